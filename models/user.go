package models

import "time"

type User struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Contact   string    `json:"contact,omitempty" db:"contact"`
	Password  string    `json:"password,omitempty" db:"password"`
	Role      string    `json:"role" db:"role"` // "user" or "admin"
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

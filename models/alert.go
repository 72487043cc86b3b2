package models

import "time"

// Alert rows are written only by the budget evaluation engine. User actions
// may flip IsRead and nothing else.
type Alert struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	BudgetID   *int      `json:"budget_id,omitempty" db:"budget_id"`
	CategoryID *int      `json:"category_id,omitempty" db:"category_id"`
	Message    string    `json:"message" db:"message"`
	AlertType  string    `json:"alert_type" db:"alert_type"` // "warning" or "exceeded"
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	IsRead     bool      `json:"is_read" db:"is_read"`
}

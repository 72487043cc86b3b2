package models

import "github.com/shopspring/decimal"

type Budget struct {
	ID           int             `json:"id" db:"id"`
	UserID       int             `json:"user_id" db:"user_id"`
	CategoryID   int             `json:"category_id" db:"category_id"`
	LimitAmount  decimal.Decimal `json:"limit_amount" db:"limit_amount"`
	Month        int             `json:"month" db:"month"` // 1-12, evaluated against the caller's year
	Status       string          `json:"status" db:"status"` // "active" or "inactive"
	CategoryName string          `json:"category_name,omitempty" db:"-"`
}

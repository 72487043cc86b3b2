package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              int             `json:"id" db:"id"`
	UserID          int             `json:"user_id" db:"user_id"`
	CategoryID      int             `json:"category_id" db:"category_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Type            string          `json:"type" db:"type"` // "income" or "expense"
	Date            time.Time       `json:"date" db:"date"`
	PaymentMethodID *int            `json:"payment_method_id,omitempty" db:"payment_method_id"`
	CategoryName    string          `json:"category_name,omitempty" db:"-"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

package models

import "github.com/shopspring/decimal"

type CategoryTotal struct {
	CategoryID int             `json:"category_id" db:"category_id"`
	Category   string          `json:"category" db:"category"`
	Total      decimal.Decimal `json:"total" db:"total"`
}

type MonthTotal struct {
	Month string          `json:"month" db:"month"` // YYYY-MM
	Total decimal.Decimal `json:"total" db:"total"`
}

// MonthCategoryTotal is one cell of the month x category spend matrix that
// feeds trend charts and the forecast.
type MonthCategoryTotal struct {
	Month    string          `json:"month" db:"month"` // YYYY-MM
	Category string          `json:"category" db:"category"`
	Total    decimal.Decimal `json:"total" db:"total"`
}

type IncomeExpenseSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Savings decimal.Decimal `json:"savings"`
}

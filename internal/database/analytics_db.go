package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

// periodFilters maps the summary period names exposed by the API to date
// conditions. The fragment is chosen from this fixed table, never from
// request text.
var periodFilters = map[string]string{
	"current_month": "AND date_trunc('month', date) = date_trunc('month', CURRENT_DATE)",
	"last_3_months": "AND date >= CURRENT_DATE - INTERVAL '3 months'",
	"last_6_months": "AND date >= CURRENT_DATE - INTERVAL '6 months'",
	"last_year":     "AND date >= CURRENT_DATE - INTERVAL '12 months'",
	"all_time":      "",
}

func periodFilter(period string) string {
	if f, ok := periodFilters[period]; ok {
		return f
	}
	return periodFilters["last_6_months"]
}

// SumTransactions is the bounded aggregate behind the chatbot: every filter
// is optional (zero value skips it) and every value is bound as a parameter.
// The user id is always applied.
func SumTransactions(ctx context.Context, pool *pgxpool.Pool, userID int, txType string, categoryID, month, year int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM transactions
		WHERE user_id = $1
		AND ($2 = '' OR type = $2)
		AND ($3 = 0 OR category_id = $3)
		AND ($4 = 0 OR EXTRACT(MONTH FROM date) = $4)
		AND ($5 = 0 OR EXTRACT(YEAR FROM date) = $5)`

	var total string
	err := pool.QueryRow(ctx, query, userID, txType, categoryID, month, year).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing transactions: %v", err)
	}
	sum, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing total %q: %v", total, err)
	}
	return sum, nil
}

func SpendByCategory(ctx context.Context, pool *pgxpool.Pool, userID, month, year int) ([]models.CategoryTotal, error) {
	query := `
		SELECT c.id, c.name, SUM(t.amount)::text AS total
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.type = 'expense'
		AND ($2 = 0 OR EXTRACT(MONTH FROM t.date) = $2)
		AND ($3 = 0 OR EXTRACT(YEAR FROM t.date) = $3)
		GROUP BY c.id, c.name
		ORDER BY SUM(t.amount) DESC`

	rows, err := pool.Query(ctx, query, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("grouping spend by category: %v", err)
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		var total string
		if err := rows.Scan(&ct.CategoryID, &ct.Category, &total); err != nil {
			return nil, fmt.Errorf("scanning category total: %v", err)
		}
		ct.Total, err = decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("parsing total %q: %v", total, err)
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

// MonthlyTotalsByType returns per-month totals for one transaction type in a
// year, for the month-over-month comparison answers.
func MonthlyTotalsByType(ctx context.Context, pool *pgxpool.Pool, userID int, txType string, year int) ([]models.MonthTotal, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM') AS month, SUM(amount)::text AS total
		FROM transactions
		WHERE user_id = $1 AND type = $2 AND EXTRACT(YEAR FROM date) = $3
		GROUP BY month
		ORDER BY month`

	rows, err := pool.Query(ctx, query, userID, txType, year)
	if err != nil {
		return nil, fmt.Errorf("grouping totals by month: %v", err)
	}
	defer rows.Close()

	var totals []models.MonthTotal
	for rows.Next() {
		var mt models.MonthTotal
		var total string
		if err := rows.Scan(&mt.Month, &total); err != nil {
			return nil, fmt.Errorf("scanning month total: %v", err)
		}
		mt.Total, err = decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("parsing total %q: %v", total, err)
		}
		totals = append(totals, mt)
	}
	return totals, rows.Err()
}

func GetIncomeExpenseSummary(ctx context.Context, pool *pgxpool.Pool, userID int, period string) (*models.IncomeExpenseSummary, error) {
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0)::text,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)::text
		FROM transactions
		WHERE user_id = $1 %s`, periodFilter(period))

	var income, expense string
	if err := pool.QueryRow(ctx, query, userID).Scan(&income, &expense); err != nil {
		return nil, fmt.Errorf("fetching income/expense summary: %v", err)
	}

	summary := &models.IncomeExpenseSummary{}
	var err error
	if summary.Income, err = decimal.NewFromString(income); err != nil {
		return nil, fmt.Errorf("parsing income %q: %v", income, err)
	}
	if summary.Expense, err = decimal.NewFromString(expense); err != nil {
		return nil, fmt.Errorf("parsing expense %q: %v", expense, err)
	}
	summary.Savings = summary.Income.Sub(summary.Expense)
	return summary, nil
}

func GetTopCategories(ctx context.Context, pool *pgxpool.Pool, userID int, period string, limit int) ([]models.CategoryTotal, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.name, SUM(t.amount)::text AS total
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.type = 'expense' %s
		GROUP BY c.id, c.name
		ORDER BY SUM(t.amount) DESC
		LIMIT $2`, periodFilter(period))

	rows, err := pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching top categories: %v", err)
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		var total string
		if err := rows.Scan(&ct.CategoryID, &ct.Category, &total); err != nil {
			return nil, fmt.Errorf("scanning category total: %v", err)
		}
		ct.Total, err = decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("parsing total %q: %v", total, err)
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

// GetMonthlyTrend returns month-by-month income and expense series for the
// period, oldest first.
func GetMonthlyTrend(ctx context.Context, pool *pgxpool.Pool, userID int, period string) ([]models.MonthTotal, []models.MonthTotal, error) {
	query := fmt.Sprintf(`
		SELECT to_char(date, 'YYYY-MM') AS month, type, SUM(amount)::text AS total
		FROM transactions
		WHERE user_id = $1 %s
		GROUP BY month, type
		ORDER BY month`, periodFilter(period))

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching monthly trend: %v", err)
	}
	defer rows.Close()

	var income, expense []models.MonthTotal
	for rows.Next() {
		var month, txType, total string
		if err := rows.Scan(&month, &txType, &total); err != nil {
			return nil, nil, fmt.Errorf("scanning trend row: %v", err)
		}
		amount, err := decimal.NewFromString(total)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing total %q: %v", total, err)
		}
		mt := models.MonthTotal{Month: month, Total: amount}
		if txType == "income" {
			income = append(income, mt)
		} else {
			expense = append(expense, mt)
		}
	}
	return income, expense, rows.Err()
}

// GetMonthlyCategoryTotals is the forecast input: total expense per
// (month, category) for one user, oldest month first.
func GetMonthlyCategoryTotals(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.MonthCategoryTotal, error) {
	query := `
		SELECT to_char(t.date, 'YYYY-MM') AS month, c.name, SUM(t.amount)::text AS total
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.type = 'expense'
		GROUP BY month, c.name
		ORDER BY month, c.name`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching monthly category totals: %v", err)
	}
	defer rows.Close()

	var totals []models.MonthCategoryTotal
	for rows.Next() {
		var mct models.MonthCategoryTotal
		var total string
		if err := rows.Scan(&mct.Month, &mct.Category, &total); err != nil {
			return nil, fmt.Errorf("scanning monthly category total: %v", err)
		}
		mct.Total, err = decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("parsing total %q: %v", total, err)
		}
		totals = append(totals, mct)
	}
	return totals, rows.Err()
}

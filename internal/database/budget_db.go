package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

func CreateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category_id, limit_amount, month, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := pool.QueryRow(ctx, query,
		budget.UserID,
		budget.CategoryID,
		budget.LimitAmount.StringFixed(2),
		budget.Month,
		budget.Status).Scan(&budget.ID)
	if err != nil {
		return fmt.Errorf("creating budget: %v", err)
	}
	return nil
}

func GetBudgetByID(ctx context.Context, pool *pgxpool.Pool, budgetID int) (*models.Budget, error) {
	query := `
		SELECT id, user_id, category_id, limit_amount::text, month, status
		FROM budgets
		WHERE id = $1`

	budget := &models.Budget{}
	var limit string
	err := pool.QueryRow(ctx, query, budgetID).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.CategoryID,
		&limit,
		&budget.Month,
		&budget.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("budget with ID %d not found", budgetID)
		}
		return nil, fmt.Errorf("fetching budget: %v", err)
	}

	budget.LimitAmount, err = decimal.NewFromString(limit)
	if err != nil {
		return nil, fmt.Errorf("parsing limit %q: %v", limit, err)
	}
	return budget, nil
}

func GetBudgetsByUserID(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.limit_amount::text, b.month, b.status, c.name
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1
		ORDER BY b.month DESC, b.id DESC`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %v", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var budget models.Budget
		var limit string
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.CategoryID, &limit, &budget.Month, &budget.Status, &budget.CategoryName); err != nil {
			return nil, fmt.Errorf("scanning budget: %v", err)
		}
		budget.LimitAmount, err = decimal.NewFromString(limit)
		if err != nil {
			return nil, fmt.Errorf("parsing limit %q: %v", limit, err)
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// ActiveBudgetForScope returns the active budget for (user, category, month),
// or nil when none is configured. Duplicate active budgets for the same scope
// are a data hazard the caller tolerates; lowest id wins.
func ActiveBudgetForScope(ctx context.Context, pool *pgxpool.Pool, userID, categoryID, month int) (*models.Budget, error) {
	query := `
		SELECT id, user_id, category_id, limit_amount::text, month, status
		FROM budgets
		WHERE user_id = $1 AND category_id = $2 AND month = $3 AND status = 'active'
		ORDER BY id
		LIMIT 1`

	budget := &models.Budget{}
	var limit string
	err := pool.QueryRow(ctx, query, userID, categoryID, month).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.CategoryID,
		&limit,
		&budget.Month,
		&budget.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching active budget: %v", err)
	}

	budget.LimitAmount, err = decimal.NewFromString(limit)
	if err != nil {
		return nil, fmt.Errorf("parsing limit %q: %v", limit, err)
	}
	return budget, nil
}

// ActiveBudgetsForUser fetches every active budget for a user in a month in
// one query; batch evaluation iterates the returned slice in memory.
func ActiveBudgetsForUser(ctx context.Context, pool *pgxpool.Pool, userID, month int) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, category_id, limit_amount::text, month, status
		FROM budgets
		WHERE user_id = $1 AND month = $2 AND status = 'active'
		ORDER BY id`

	rows, err := pool.Query(ctx, query, userID, month)
	if err != nil {
		return nil, fmt.Errorf("listing active budgets: %v", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var budget models.Budget
		var limit string
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.CategoryID, &limit, &budget.Month, &budget.Status); err != nil {
			return nil, fmt.Errorf("scanning budget: %v", err)
		}
		budget.LimitAmount, err = decimal.NewFromString(limit)
		if err != nil {
			return nil, fmt.Errorf("parsing limit %q: %v", limit, err)
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// UsersWithActiveBudgets feeds the scheduled recheck job.
func UsersWithActiveBudgets(ctx context.Context, pool *pgxpool.Pool, month int) ([]int, error) {
	query := `SELECT DISTINCT user_id FROM budgets WHERE month = $1 AND status = 'active' ORDER BY user_id`

	rows, err := pool.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("listing budget holders: %v", err)
	}
	defer rows.Close()

	var userIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user id: %v", err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

func UpdateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) error {
	query := `
		UPDATE budgets
		SET category_id = $1, limit_amount = $2, month = $3, status = $4
		WHERE id = $5`

	result, err := pool.Exec(ctx, query,
		budget.CategoryID,
		budget.LimitAmount.StringFixed(2),
		budget.Month,
		budget.Status,
		budget.ID)
	if err != nil {
		return fmt.Errorf("updating budget: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("budget with ID %d not found", budget.ID)
	}
	return nil
}

func DeleteBudget(ctx context.Context, pool *pgxpool.Pool, budgetID int) error {
	query := `DELETE FROM budgets WHERE id = $1`

	result, err := pool.Exec(ctx, query, budgetID)
	if err != nil {
		return fmt.Errorf("deleting budget: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("budget with ID %d not found", budgetID)
	}
	return nil
}

package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

// Store adapts the pool-backed functions in this package to the narrow
// interfaces the budget engine and the chatbot resolver consume.
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

func (s *Store) ActiveBudget(ctx context.Context, userID, categoryID, month int) (*models.Budget, error) {
	return ActiveBudgetForScope(ctx, s.Pool, userID, categoryID, month)
}

func (s *Store) ActiveBudgets(ctx context.Context, userID, month int) ([]models.Budget, error) {
	return ActiveBudgetsForUser(ctx, s.Pool, userID, month)
}

func (s *Store) TotalSpent(ctx context.Context, userID, categoryID, month, year int) (decimal.Decimal, error) {
	return TotalSpent(ctx, s.Pool, userID, categoryID, month, year)
}

func (s *Store) CategoryName(ctx context.Context, categoryID int) (string, error) {
	category, err := GetCategoryByID(ctx, s.Pool, categoryID)
	if err != nil {
		return "", err
	}
	return category.Name, nil
}

func (s *Store) SaveAlert(ctx context.Context, alert *models.Alert) error {
	return UpsertAlert(ctx, s.Pool, alert)
}

func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	return GetAllCategories(ctx, s.Pool)
}

func (s *Store) SumTransactions(ctx context.Context, userID int, txType string, categoryID, month, year int) (decimal.Decimal, error) {
	return SumTransactions(ctx, s.Pool, userID, txType, categoryID, month, year)
}

func (s *Store) SpendByCategory(ctx context.Context, userID, month, year int) ([]models.CategoryTotal, error) {
	return SpendByCategory(ctx, s.Pool, userID, month, year)
}

func (s *Store) MonthlyTotalsByType(ctx context.Context, userID int, txType string, year int) ([]models.MonthTotal, error) {
	return MonthlyTotalsByType(ctx, s.Pool, userID, txType, year)
}

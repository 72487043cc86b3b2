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

// Money columns are NUMERIC(12,2); they travel as text between here and
// Postgres so nothing ever passes through a float.

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, category_id, amount, type, date, payment_method_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := pool.QueryRow(ctx, query,
		transaction.UserID,
		transaction.CategoryID,
		transaction.Amount.StringFixed(2),
		transaction.Type,
		transaction.Date,
		transaction.PaymentMethodID).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("creating transaction: %v", err)
	}
	return nil
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, transactionID int) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, category_id, amount::text, type, date, payment_method_id, created_at
		FROM transactions
		WHERE id = $1`

	transaction := &models.Transaction{}
	var amount string
	err := pool.QueryRow(ctx, query, transactionID).Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.CategoryID,
		&amount,
		&transaction.Type,
		&transaction.Date,
		&transaction.PaymentMethodID,
		&transaction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction with ID %d not found", transactionID)
		}
		return nil, fmt.Errorf("fetching transaction: %v", err)
	}

	transaction.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parsing amount %q: %v", amount, err)
	}
	return transaction, nil
}

func GetTransactionsByUserID(ctx context.Context, pool *pgxpool.Pool, userID, limit int) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.category_id, t.amount::text, t.type, t.date, t.payment_method_id, t.created_at, c.name
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		ORDER BY t.date DESC, t.id DESC
		LIMIT $2`

	rows, err := pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %v", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetAllTransactions is the admin view across every user.
func GetAllTransactions(ctx context.Context, pool *pgxpool.Pool, limit int) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.category_id, t.amount::text, t.type, t.date, t.payment_method_id, t.created_at, c.name
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		ORDER BY t.date DESC, t.id DESC
		LIMIT $1`

	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %v", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var transaction models.Transaction
		var amount string
		if err := rows.Scan(
			&transaction.ID,
			&transaction.UserID,
			&transaction.CategoryID,
			&amount,
			&transaction.Type,
			&transaction.Date,
			&transaction.PaymentMethodID,
			&transaction.CreatedAt,
			&transaction.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("scanning transaction: %v", err)
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing amount %q: %v", amount, err)
		}
		transaction.Amount = parsed
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// UpdateTransaction is a full replacement of the mutable fields. The caller
// re-evaluates budgets for both the old and new scope afterwards.
func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $1, amount = $2, type = $3, date = $4, payment_method_id = $5
		WHERE id = $6`

	result, err := pool.Exec(ctx, query,
		transaction.CategoryID,
		transaction.Amount.StringFixed(2),
		transaction.Type,
		transaction.Date,
		transaction.PaymentMethodID,
		transaction.ID)
	if err != nil {
		return fmt.Errorf("updating transaction: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction with ID %d not found", transaction.ID)
	}
	return nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, transactionID int) error {
	query := `DELETE FROM transactions WHERE id = $1`

	result, err := pool.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction with ID %d not found", transactionID)
	}
	return nil
}

// TotalSpent sums expense transactions for one budget scope.
func TotalSpent(ctx context.Context, pool *pgxpool.Pool, userID, categoryID, month, year int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM transactions
		WHERE user_id = $1 AND category_id = $2 AND type = 'expense'
		AND EXTRACT(MONTH FROM date) = $3 AND EXTRACT(YEAR FROM date) = $4`

	var total string
	err := pool.QueryRow(ctx, query, userID, categoryID, month, year).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing spend: %v", err)
	}
	spent, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing total %q: %v", total, err)
	}
	return spent, nil
}

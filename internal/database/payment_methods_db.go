package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

func CreatePaymentMethod(ctx context.Context, pool *pgxpool.Pool, method *models.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (type, details)
		VALUES ($1, $2)
		RETURNING id`

	err := pool.QueryRow(ctx, query, method.Type, method.Details).Scan(&method.ID)
	if err != nil {
		return fmt.Errorf("creating payment method: %v", err)
	}
	return nil
}

func GetPaymentMethodByID(ctx context.Context, pool *pgxpool.Pool, methodID int) (*models.PaymentMethod, error) {
	query := `SELECT id, type, details FROM payment_methods WHERE id = $1`

	method := &models.PaymentMethod{}
	err := pool.QueryRow(ctx, query, methodID).Scan(&method.ID, &method.Type, &method.Details)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment method with ID %d not found", methodID)
		}
		return nil, fmt.Errorf("fetching payment method: %v", err)
	}
	return method, nil
}

func GetAllPaymentMethods(ctx context.Context, pool *pgxpool.Pool) ([]models.PaymentMethod, error) {
	query := `SELECT id, type, details FROM payment_methods ORDER BY type`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %v", err)
	}
	defer rows.Close()

	var methods []models.PaymentMethod
	for rows.Next() {
		var method models.PaymentMethod
		if err := rows.Scan(&method.ID, &method.Type, &method.Details); err != nil {
			return nil, fmt.Errorf("scanning payment method: %v", err)
		}
		methods = append(methods, method)
	}
	return methods, rows.Err()
}

func UpdatePaymentMethod(ctx context.Context, pool *pgxpool.Pool, method *models.PaymentMethod) error {
	query := `UPDATE payment_methods SET type = $1, details = $2 WHERE id = $3`

	result, err := pool.Exec(ctx, query, method.Type, method.Details, method.ID)
	if err != nil {
		return fmt.Errorf("updating payment method: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment method with ID %d not found", method.ID)
	}
	return nil
}

func DeletePaymentMethod(ctx context.Context, pool *pgxpool.Pool, methodID int) error {
	result, err := pool.Exec(ctx, `DELETE FROM payment_methods WHERE id = $1`, methodID)
	if err != nil {
		return fmt.Errorf("deleting payment method: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment method with ID %d not found", methodID)
	}
	return nil
}

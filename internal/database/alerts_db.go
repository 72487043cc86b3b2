package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

// UpsertAlert keeps at most one unread alert per (budget, category) scope:
// an existing unread row gets the new message, type and timestamp instead of
// a duplicate insert. Read-then-write, not atomic; two writers racing on the
// same scope can still produce two rows, which the UI tolerates.
func UpsertAlert(ctx context.Context, pool *pgxpool.Pool, alert *models.Alert) error {
	find := `
		SELECT id
		FROM alerts
		WHERE user_id = $1 AND budget_id = $2 AND category_id = $3 AND is_read = FALSE
		ORDER BY id
		LIMIT 1`

	var existingID int
	err := pool.QueryRow(ctx, find, alert.UserID, alert.BudgetID, alert.CategoryID).Scan(&existingID)
	switch {
	case err == nil:
		update := `
			UPDATE alerts
			SET message = $1, alert_type = $2, created_at = now(), is_read = FALSE
			WHERE id = $3`
		if _, err := pool.Exec(ctx, update, alert.Message, alert.AlertType, existingID); err != nil {
			return fmt.Errorf("updating alert: %v", err)
		}
		alert.ID = existingID
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		insert := `
			INSERT INTO alerts (user_id, budget_id, category_id, message, alert_type)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`
		if err := pool.QueryRow(ctx, insert, alert.UserID, alert.BudgetID, alert.CategoryID, alert.Message, alert.AlertType).Scan(&alert.ID); err != nil {
			return fmt.Errorf("creating alert: %v", err)
		}
		return nil
	default:
		return fmt.Errorf("looking up alert: %v", err)
	}
}

func GetAlertsByUserID(ctx context.Context, pool *pgxpool.Pool, userID int, unreadOnly bool) ([]models.Alert, error) {
	query := `
		SELECT id, user_id, budget_id, category_id, message, alert_type, created_at, is_read
		FROM alerts
		WHERE user_id = $1 AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC, id DESC`

	rows, err := pool.Query(ctx, query, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %v", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var alert models.Alert
		if err := rows.Scan(
			&alert.ID,
			&alert.UserID,
			&alert.BudgetID,
			&alert.CategoryID,
			&alert.Message,
			&alert.AlertType,
			&alert.CreatedAt,
			&alert.IsRead,
		); err != nil {
			return nil, fmt.Errorf("scanning alert: %v", err)
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// MarkAlertRead is scoped by user so nobody can acknowledge another user's alert.
func MarkAlertRead(ctx context.Context, pool *pgxpool.Pool, alertID, userID int) error {
	query := `UPDATE alerts SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	result, err := pool.Exec(ctx, query, alertID, userID)
	if err != nil {
		return fmt.Errorf("marking alert read: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("alert with ID %d not found", alertID)
	}
	return nil
}

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.Category) error {
	query := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id`

	err := pool.QueryRow(ctx, query, category.Name, category.Description).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("creating category: %v", err)
	}
	return nil
}

func GetCategoryByID(ctx context.Context, pool *pgxpool.Pool, categoryID int) (*models.Category, error) {
	query := `
		SELECT id, name, description
		FROM categories
		WHERE id = $1`

	category := &models.Category{}
	err := pool.QueryRow(ctx, query, categoryID).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("category with ID %d not found", categoryID)
		}
		return nil, fmt.Errorf("fetching category: %v", err)
	}

	return category, nil
}

func GetAllCategories(ctx context.Context, pool *pgxpool.Pool) ([]models.Category, error) {
	query := `SELECT id, name, description FROM categories ORDER BY name`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %v", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, fmt.Errorf("scanning category: %v", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, description = $2
		WHERE id = $3`

	_, err := pool.Exec(ctx, query, category.Name, category.Description, category.ID)
	if err != nil {
		return fmt.Errorf("updating category: %v", err)
	}
	return nil
}

func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, categoryID int) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := pool.Exec(ctx, query, categoryID)
	if err != nil {
		return fmt.Errorf("deleting category: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("category with ID %d not found", categoryID)
	}
	return nil
}

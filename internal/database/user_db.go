package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

// RegisterUser hashes the password and stores the user with the "user" role.
// Role escalation happens only through UpdateUserRole.
func RegisterUser(ctx context.Context, pool *pgxpool.Pool, user *models.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %v", err)
	}

	query := `
		INSERT INTO users (name, email, contact, password, role)
		VALUES ($1, $2, $3, $4, 'user')
		RETURNING id`

	err = pool.QueryRow(ctx, query, user.Name, user.Email, user.Contact, string(hashedPassword)).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("creating user: %v", err)
	}
	user.Role = "user"
	user.Password = ""
	return nil
}

func AuthenticateUser(ctx context.Context, pool *pgxpool.Pool, email, password string) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email, password, role FROM users WHERE email = $1`
	err := pool.QueryRow(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invalid email or password")
		}
		return nil, fmt.Errorf("fetching user: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	user.Password = ""
	return &user, nil
}

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, id int) (*models.User, error) {
	query := `SELECT id, name, email, contact, role, created_at FROM users WHERE id = $1`

	var user models.User
	var contact *string
	err := pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email, &contact, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with ID %d not found", id)
		}
		return nil, fmt.Errorf("fetching user: %v", err)
	}
	if contact != nil {
		user.Contact = *contact
	}
	return &user, nil
}

func GetAllUsers(ctx context.Context, pool *pgxpool.Pool) ([]models.User, error) {
	query := `SELECT id, name, email, contact, role, created_at FROM users ORDER BY id`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %v", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var contact *string
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &contact, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %v", err)
		}
		if contact != nil {
			user.Contact = *contact
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func UpdateUserContact(ctx context.Context, pool *pgxpool.Pool, userID int, contact string) error {
	_, err := pool.Exec(ctx, `UPDATE users SET contact = $1 WHERE id = $2`, contact, userID)
	if err != nil {
		return fmt.Errorf("updating contact: %v", err)
	}
	return nil
}

func UpdateUserRole(ctx context.Context, pool *pgxpool.Pool, userID int, role string) error {
	if role != "user" && role != "admin" {
		return fmt.Errorf("invalid role %q", role)
	}
	result, err := pool.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, userID)
	if err != nil {
		return fmt.Errorf("updating role: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with ID %d not found", userID)
	}
	return nil
}

// DeleteUser fails while transactions or budgets still reference the user;
// that is intentional, users are never hard-deleted from under their data.
func DeleteUser(ctx context.Context, pool *pgxpool.Pool, id int) error {
	result, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with ID %d not found", id)
	}
	return nil
}

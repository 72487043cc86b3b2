package utils

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arjunkrishnadas/expense-tracker/internal/database"
	"github.com/arjunkrishnadas/expense-tracker/models"
)

var seedCategories = []models.Category{
	{Name: "Food", Description: "Groceries and eating out"},
	{Name: "Rent", Description: "Monthly housing"},
	{Name: "Utilities", Description: "Electricity, water, internet"},
	{Name: "Entertainment", Description: "Movies, games, subscriptions"},
	{Name: "Travel", Description: "Trips and commuting"},
	{Name: "Shopping", Description: "Clothes and gadgets"},
	{Name: "Health", Description: "Medicines and checkups"},
	{Name: "Miscellaneous", Description: "Everything else"},
}

var seedPaymentMethods = []string{"Cash", "UPI", "Credit Card", "Debit Card", "Net Banking"}

// SeedDemoData fills an empty database with users, categories, payment
// methods, six months of transactions and a few budgets. Intended for local
// development only.
func SeedDemoData(ctx context.Context, pool *pgxpool.Pool, numUsers int) error {
	categoryIDs, err := seedSharedCategories(ctx, pool)
	if err != nil {
		return err
	}
	methodIDs, err := seedSharedPaymentMethods(ctx, pool)
	if err != nil {
		return err
	}

	for i := 0; i < numUsers; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    gofakeit.Email(),
			Contact:  gofakeit.Phone(),
			Password: "password123",
		}
		if err := database.RegisterUser(ctx, pool, user); err != nil {
			return fmt.Errorf("seeding user: %v", err)
		}

		if err := seedTransactions(ctx, pool, user.ID, categoryIDs, methodIDs); err != nil {
			return err
		}
		if err := seedBudgets(ctx, pool, user.ID, categoryIDs); err != nil {
			return err
		}
		log.Printf("seeded user %d (%s)", user.ID, user.Email)
	}
	return nil
}

func seedSharedCategories(ctx context.Context, pool *pgxpool.Pool) ([]int, error) {
	ids := make([]int, 0, len(seedCategories))
	for _, c := range seedCategories {
		category := c
		if err := database.CreateCategory(ctx, pool, &category); err != nil {
			return nil, fmt.Errorf("seeding category %q: %v", c.Name, err)
		}
		ids = append(ids, category.ID)
	}
	return ids, nil
}

func seedSharedPaymentMethods(ctx context.Context, pool *pgxpool.Pool) ([]int, error) {
	ids := make([]int, 0, len(seedPaymentMethods))
	for _, methodType := range seedPaymentMethods {
		method := &models.PaymentMethod{Type: methodType}
		if err := database.CreatePaymentMethod(ctx, pool, method); err != nil {
			return nil, fmt.Errorf("seeding payment method %q: %v", methodType, err)
		}
		ids = append(ids, method.ID)
	}
	return ids, nil
}

func seedTransactions(ctx context.Context, pool *pgxpool.Pool, userID int, categoryIDs, methodIDs []int) error {
	now := time.Now()
	for monthsBack := 5; monthsBack >= 0; monthsBack-- {
		monthStart := now.AddDate(0, -monthsBack, 0)

		// one salary credit per month
		salary := &models.Transaction{
			UserID:     userID,
			CategoryID: categoryIDs[rand.Intn(len(categoryIDs))],
			Amount:     decimal.NewFromInt(int64(30000 + rand.Intn(20000))),
			Type:       "income",
			Date:       monthStart,
		}
		if err := database.CreateTransaction(ctx, pool, salary); err != nil {
			return fmt.Errorf("seeding income: %v", err)
		}

		for i := 0; i < 10+rand.Intn(15); i++ {
			methodID := methodIDs[rand.Intn(len(methodIDs))]
			expense := &models.Transaction{
				UserID:          userID,
				CategoryID:      categoryIDs[rand.Intn(len(categoryIDs))],
				Amount:          decimal.NewFromFloat(gofakeit.Price(50, 3000)).Round(2),
				Type:            "expense",
				Date:            monthStart.AddDate(0, 0, rand.Intn(28)),
				PaymentMethodID: &methodID,
			}
			if err := database.CreateTransaction(ctx, pool, expense); err != nil {
				return fmt.Errorf("seeding expense: %v", err)
			}
		}
	}
	return nil
}

func seedBudgets(ctx context.Context, pool *pgxpool.Pool, userID int, categoryIDs []int) error {
	month := int(time.Now().Month())
	for _, categoryID := range categoryIDs[:3] {
		b := &models.Budget{
			UserID:      userID,
			CategoryID:  categoryID,
			LimitAmount: decimal.NewFromInt(int64(3000 + rand.Intn(7000))),
			Month:       month,
			Status:      "active",
		}
		if err := database.CreateBudget(ctx, pool, b); err != nil {
			return fmt.Errorf("seeding budget: %v", err)
		}
	}
	return nil
}

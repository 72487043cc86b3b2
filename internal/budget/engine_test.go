package budget_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunkrishnadas/expense-tracker/internal/budget"
	"github.com/arjunkrishnadas/expense-tracker/models"
)

type fakeStore struct {
	mu         sync.Mutex
	budgets    []models.Budget
	spent      map[int]decimal.Decimal // keyed by category id
	categories map[int]string
	alerts     []models.Alert

	spentErr map[int]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		spent:      map[int]decimal.Decimal{},
		categories: map[int]string{},
		spentErr:   map[int]error{},
	}
}

func (s *fakeStore) ActiveBudget(_ context.Context, userID, categoryID, month int) (*models.Budget, error) {
	for i := range s.budgets {
		b := s.budgets[i]
		if b.UserID == userID && b.CategoryID == categoryID && b.Month == month && b.Status == "active" {
			return &b, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ActiveBudgets(_ context.Context, userID, month int) ([]models.Budget, error) {
	var out []models.Budget
	for _, b := range s.budgets {
		if b.UserID == userID && b.Month == month && b.Status == "active" {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeStore) TotalSpent(_ context.Context, _, categoryID, _, _ int) (decimal.Decimal, error) {
	if err := s.spentErr[categoryID]; err != nil {
		return decimal.Zero, err
	}
	return s.spent[categoryID], nil
}

func (s *fakeStore) CategoryName(_ context.Context, categoryID int) (string, error) {
	name, ok := s.categories[categoryID]
	if !ok {
		return "", fmt.Errorf("category %d not found", categoryID)
	}
	return name, nil
}

// SaveAlert mirrors the real upsert: one unread alert per (budget, category)
// scope gets overwritten instead of duplicated.
func (s *fakeStore) SaveAlert(_ context.Context, alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		existing := &s.alerts[i]
		if !existing.IsRead && *existing.BudgetID == *alert.BudgetID && *existing.CategoryID == *alert.CategoryID {
			existing.Message = alert.Message
			existing.AlertType = alert.AlertType
			return nil
		}
	}
	s.alerts = append(s.alerts, *alert)
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activeBudget(id, userID, categoryID int, limit string, month int) models.Budget {
	return models.Budget{
		ID:          id,
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: dec(limit),
		Month:       month,
		Status:      "active",
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		spent string
		limit string
		want  budget.Status
	}{
		{"well under", "100.00", "1000.00", budget.StatusOK},
		{"just below 90 percent", "899.99", "1000.00", budget.StatusOK},
		{"exactly 90 percent", "900.00", "1000.00", budget.StatusWarning},
		{"between thresholds", "999.99", "1000.00", budget.StatusWarning},
		{"exactly at limit", "1000.00", "1000.00", budget.StatusExceeded},
		{"over limit", "1000.01", "1000.00", budget.StatusExceeded},
		{"zero spend", "0.00", "1000.00", budget.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, budget.Classify(dec(tt.spent), dec(tt.limit)))
		})
	}
}

func TestEvaluateNoBudget(t *testing.T) {
	store := newFakeStore()
	engine := budget.NewEngine(store)

	result, err := engine.Evaluate(context.Background(), 1, 2, 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, budget.StatusNoBudget, result.Status)
	assert.Empty(t, store.alerts, "no budget must never produce an alert")
}

func TestEvaluateOKWritesNoAlert(t *testing.T) {
	store := newFakeStore()
	store.budgets = append(store.budgets, activeBudget(7, 1, 2, "1000.00", 3))
	store.categories[2] = "Food"
	store.spent[2] = dec("250.00")
	engine := budget.NewEngine(store)

	result, err := engine.Evaluate(context.Background(), 1, 2, 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, budget.StatusOK, result.Status)
	assert.True(t, result.Remaining.Equal(dec("750.00")))
	assert.True(t, result.Percent.Equal(dec("25.00")))
	assert.Empty(t, store.alerts)
}

func TestEvaluateWarning(t *testing.T) {
	store := newFakeStore()
	store.budgets = append(store.budgets, activeBudget(7, 1, 2, "1000.00", 3))
	store.categories[2] = "Food"
	store.spent[2] = dec("925.50")
	engine := budget.NewEngine(store)

	result, err := engine.Evaluate(context.Background(), 1, 2, 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, budget.StatusWarning, result.Status)
	assert.True(t, result.Percent.Equal(dec("92.55")))

	require.Len(t, store.alerts, 1)
	alert := store.alerts[0]
	assert.Equal(t, "warning", alert.AlertType)
	assert.Equal(t, 1, alert.UserID)
	assert.Equal(t, 7, *alert.BudgetID)
	assert.Contains(t, alert.Message, "Food")
	assert.Contains(t, alert.Message, "92.55%")
}

func TestRepeatedWarningDoesNotDuplicate(t *testing.T) {
	store := newFakeStore()
	store.budgets = append(store.budgets, activeBudget(7, 1, 2, "1000.00", 3))
	store.categories[2] = "Food"
	store.spent[2] = dec("900.00")
	engine := budget.NewEngine(store)

	_, err := engine.Evaluate(context.Background(), 1, 2, 3, 2025)
	require.NoError(t, err)

	store.spent[2] = dec("950.00")
	_, err = engine.Evaluate(context.Background(), 1, 2, 3, 2025)
	require.NoError(t, err)

	require.Len(t, store.alerts, 1, "repeated crossings below the limit keep a single alert")
	assert.Equal(t, "warning", store.alerts[0].AlertType)
}

func TestExceededOverwritesWarning(t *testing.T) {
	store := newFakeStore()
	store.budgets = append(store.budgets, activeBudget(7, 1, 2, "1000.00", 3))
	store.categories[2] = "Food"
	store.spent[2] = dec("950.00")
	engine := budget.NewEngine(store)

	_, err := engine.Evaluate(context.Background(), 1, 2, 3, 2025)
	require.NoError(t, err)

	store.spent[2] = dec("1200.00")
	result, err := engine.Evaluate(context.Background(), 1, 2, 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, budget.StatusExceeded, result.Status)
	assert.True(t, result.Remaining.Equal(dec("-200.00")))

	require.Len(t, store.alerts, 1)
	assert.Equal(t, "exceeded", store.alerts[0].AlertType)
	assert.Contains(t, store.alerts[0].Message, "Budget exceeded")
}

func TestAlertsAreNotRetracted(t *testing.T) {
	store := newFakeStore()
	store.budgets = append(store.budgets, activeBudget(7, 1, 2, "1000.00", 3))
	store.categories[2] = "Food"
	store.spent[2] = dec("1000.00")
	engine := budget.NewEngine(store)

	_, err := engine.Evaluate(context.Background(), 1, 2, 3, 2025)
	require.NoError(t, err)
	require.Len(t, store.alerts, 1)

	// spend drops back under every threshold, e.g. after a delete
	store.spent[2] = dec("100.00")
	result, err := engine.Evaluate(context.Background(), 1, 2, 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, budget.StatusOK, result.Status)
	assert.Len(t, store.alerts, 1, "existing alerts stay on record")
}

func TestMissingCategoryNameStillAlerts(t *testing.T) {
	store := newFakeStore()
	store.budgets = append(store.budgets, activeBudget(7, 1, 2, "1000.00", 3))
	store.spent[2] = dec("1500.00")
	engine := budget.NewEngine(store)

	result, err := engine.Evaluate(context.Background(), 1, 2, 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, budget.StatusExceeded, result.Status)
	require.Len(t, store.alerts, 1)
	assert.Contains(t, store.alerts[0].Message, "category 2")
}

func TestEvaluateAllCollectsPartialFailures(t *testing.T) {
	store := newFakeStore()
	store.budgets = append(store.budgets,
		activeBudget(1, 1, 10, "500.00", 3),
		activeBudget(2, 1, 11, "800.00", 3),
		activeBudget(3, 1, 12, "300.00", 3),
	)
	store.categories[10] = "Food"
	store.categories[11] = "Travel"
	store.categories[12] = "Rent"
	store.spent[10] = dec("600.00")
	store.spent[12] = dec("100.00")
	store.spentErr[11] = fmt.Errorf("connection reset")
	engine := budget.NewEngine(store)

	results, err := engine.EvaluateAll(context.Background(), 1, 3, 2025)
	require.NoError(t, err)
	require.Len(t, results, 3)

	byCategory := map[int]budget.ScopeResult{}
	for _, r := range results {
		byCategory[r.CategoryID] = r
	}
	assert.Equal(t, budget.StatusExceeded, byCategory[10].Result.Status)
	assert.Error(t, byCategory[11].Err, "one failing scope must not abort the rest")
	assert.Equal(t, budget.StatusOK, byCategory[12].Result.Status)
}

func TestIndependentScopesShareNoState(t *testing.T) {
	store := newFakeStore()
	store.budgets = append(store.budgets,
		activeBudget(1, 1, 10, "500.00", 3),
		activeBudget(2, 2, 10, "500.00", 3),
	)
	store.categories[10] = "Food"
	store.spent[10] = dec("495.00")
	engine := budget.NewEngine(store)

	done := make(chan error, 2)
	go func() {
		_, err := engine.Evaluate(context.Background(), 1, 10, 3, 2025)
		done <- err
	}()
	go func() {
		_, err := engine.Evaluate(context.Background(), 2, 10, 3, 2025)
		done <- err
	}()
	require.NoError(t, <-done)
	require.NoError(t, <-done)
	assert.Len(t, store.alerts, 2, "distinct users get distinct alerts")
}

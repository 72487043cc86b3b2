package chatbot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

type sumCall struct {
	userID     int
	txType     string
	categoryID int
	month      int
	year       int
}

type fakeStore struct {
	categories []models.Category
	sum        decimal.Decimal
	byCategory []models.CategoryTotal
	byMonth    []models.MonthTotal

	sumCalls []sumCall
}

func (f *fakeStore) Categories(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeStore) SumTransactions(ctx context.Context, userID int, txType string, categoryID, month, year int) (decimal.Decimal, error) {
	f.sumCalls = append(f.sumCalls, sumCall{userID, txType, categoryID, month, year})
	return f.sum, nil
}

func (f *fakeStore) SpendByCategory(ctx context.Context, userID, month, year int) ([]models.CategoryTotal, error) {
	return f.byCategory, nil
}

func (f *fakeStore) MonthlyTotalsByType(ctx context.Context, userID int, txType string, year int) ([]models.MonthTotal, error) {
	return f.byMonth, nil
}

type fakeAgent struct {
	result *AgentResult
	err    error
	calls  int
}

func (f *fakeAgent) Classify(ctx context.Context, question string, categories []string) (*AgentResult, error) {
	f.calls++
	return f.result, f.err
}

var testCategories = []models.Category{
	{ID: 1, Name: "Food"},
	{ID: 2, Name: "Rent"},
	{ID: 3, Name: "Entertainment"},
}

func testResolver(store Store, agent Agent) *Resolver {
	r := NewResolver(store, agent, 50*time.Millisecond)
	r.Now = func() time.Time { return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "what did i spend on food", normalize("  What did I spend on FOOD?! "))
	assert.Equal(t, "", normalize("  ?!  "))
}

func TestClassifyIntents(t *testing.T) {
	tests := []struct {
		question string
		want     Intent
	}{
		{"hello", IntentGreeting},
		{"Show my total expenses this month", IntentTotalExpense},
		{"How much income did I receive in March?", IntentTotalIncome},
		{"What did I spend on food?", IntentCategoryTotal},
		{"Show my spending by category", IntentSpendByCategory},
		{"Compare my expenses across months", IntentCompareMonths},
		{"what is the meaning of life", IntentUnknown},
		{"", IntentUnknown},
	}
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			norm := normalize(tt.question)
			ents := extractEntities(norm, testCategories, now)
			assert.Equal(t, tt.want, classify(norm, ents))
		})
	}
}

func TestExtractEntitiesDates(t *testing.T) {
	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	ents := extractEntities(normalize("my expenses this month"), nil, now)
	assert.Equal(t, 1, ents.Month)
	assert.Equal(t, 2025, ents.Year)

	// last month from January crosses the year boundary
	ents = extractEntities(normalize("my expenses last month"), nil, now)
	assert.Equal(t, 12, ents.Month)
	assert.Equal(t, 2024, ents.Year)

	ents = extractEntities(normalize("income in March"), nil, now)
	assert.Equal(t, 3, ents.Month)
	assert.Equal(t, 2025, ents.Year)

	ents = extractEntities(normalize("my total expenses"), nil, now)
	assert.Zero(t, ents.Month)
}

func TestExtractEntitiesLongestCategoryWins(t *testing.T) {
	cats := []models.Category{
		{ID: 1, Name: "Food"},
		{ID: 2, Name: "Food Delivery"},
	}
	ents := extractEntities(normalize("how much on food delivery?"), cats, time.Now())
	require.NotNil(t, ents.Category)
	assert.Equal(t, 2, ents.Category.ID)
}

func TestResolveTotalExpenseScopedToUser(t *testing.T) {
	store := &fakeStore{categories: testCategories, sum: decimal.RequireFromString("1234.50")}
	r := testResolver(store, nil)

	ans, err := r.Resolve(context.Background(), 42, "Show my total expenses this month")
	require.NoError(t, err)
	assert.True(t, ans.Understood)
	assert.Equal(t, IntentTotalExpense, ans.Intent)
	assert.Contains(t, ans.Summary, "₹1234.50")
	assert.Contains(t, ans.Summary, "March 2025")

	require.Len(t, store.sumCalls, 1)
	call := store.sumCalls[0]
	assert.Equal(t, 42, call.userID)
	assert.Equal(t, "expense", call.txType)
	assert.Equal(t, 3, call.month)
	assert.Equal(t, 2025, call.year)
}

func TestResolveCategoryTotalWithoutDate(t *testing.T) {
	store := &fakeStore{categories: testCategories, sum: decimal.RequireFromString("380.00")}
	r := testResolver(store, nil)

	ans, err := r.Resolve(context.Background(), 7, "What did I spend on food?")
	require.NoError(t, err)
	assert.Equal(t, IntentCategoryTotal, ans.Intent)
	assert.Contains(t, ans.Summary, "Food")

	require.Len(t, store.sumCalls, 1)
	call := store.sumCalls[0]
	assert.Equal(t, 7, call.userID)
	assert.Equal(t, 1, call.categoryID)
	assert.Zero(t, call.month, "no date filter when the question names no period")
}

func TestResolveSpendByCategory(t *testing.T) {
	store := &fakeStore{
		categories: testCategories,
		byCategory: []models.CategoryTotal{
			{CategoryID: 2, Category: "Rent", Total: decimal.RequireFromString("9000.00")},
			{CategoryID: 1, Category: "Food", Total: decimal.RequireFromString("2100.00")},
		},
	}
	r := testResolver(store, nil)

	ans, err := r.Resolve(context.Background(), 7, "show my spending by category")
	require.NoError(t, err)
	assert.Equal(t, IntentSpendByCategory, ans.Intent)
	assert.Contains(t, ans.Summary, "Rent")
	assert.Equal(t, []string{"category", "total"}, ans.Columns)
	require.Len(t, ans.Rows, 2)
	assert.Equal(t, []string{"Rent", "9000.00"}, ans.Rows[0])
}

func TestResolveCompareMonthsPicksHighest(t *testing.T) {
	store := &fakeStore{
		categories: testCategories,
		byMonth: []models.MonthTotal{
			{Month: "2025-01", Total: decimal.RequireFromString("1500.00")},
			{Month: "2025-02", Total: decimal.RequireFromString("4800.00")},
			{Month: "2025-03", Total: decimal.RequireFromString("900.00")},
		},
	}
	r := testResolver(store, nil)

	ans, err := r.Resolve(context.Background(), 7, "compare my expenses across months")
	require.NoError(t, err)
	assert.Equal(t, IntentCompareMonths, ans.Intent)
	assert.Contains(t, ans.Summary, "2025-02")
	assert.Len(t, ans.Rows, 3)
}

func TestResolveUnknownReturnsHelp(t *testing.T) {
	store := &fakeStore{categories: testCategories}
	r := testResolver(store, nil)

	ans, err := r.Resolve(context.Background(), 7, "what is the meaning of life")
	require.NoError(t, err)
	assert.False(t, ans.Understood)
	assert.Equal(t, IntentUnknown, ans.Intent)
	assert.NotEmpty(t, ans.Examples)
	assert.Empty(t, store.sumCalls, "unrecognized questions must not hit the database")
}

func TestResolveEmptyResultsSayNoData(t *testing.T) {
	store := &fakeStore{categories: testCategories}
	r := testResolver(store, nil)

	ans, err := r.Resolve(context.Background(), 7, "compare my spending across months")
	require.NoError(t, err)
	assert.True(t, ans.Understood)
	assert.Contains(t, ans.Summary, "No matching data")
}

func TestAgentResultIsUsed(t *testing.T) {
	store := &fakeStore{categories: testCategories, sum: decimal.RequireFromString("500.00")}
	agent := &fakeAgent{result: &AgentResult{Intent: "category_total", Category: "Rent", Month: "February", Type: "expense"}}
	r := testResolver(store, agent)

	ans, err := r.Resolve(context.Background(), 9, "how much went to the landlord in feb")
	require.NoError(t, err)
	assert.Equal(t, 1, agent.calls)
	assert.Equal(t, IntentCategoryTotal, ans.Intent)
	assert.Contains(t, ans.Summary, "Rent")

	require.Len(t, store.sumCalls, 1)
	call := store.sumCalls[0]
	assert.Equal(t, 9, call.userID)
	assert.Equal(t, 2, call.categoryID)
	assert.Equal(t, 2, call.month)
}

func TestAgentFailureFallsBackToLocalRules(t *testing.T) {
	store := &fakeStore{categories: testCategories, sum: decimal.RequireFromString("250.00")}
	agent := &fakeAgent{err: errors.New("connection refused")}
	r := testResolver(store, agent)

	ans, err := r.Resolve(context.Background(), 9, "Show my total expenses this month")
	require.NoError(t, err)
	assert.Equal(t, 1, agent.calls)
	assert.True(t, ans.Understood)
	assert.Equal(t, IntentTotalExpense, ans.Intent)
}

func TestAgentBogusIntentFallsBackToLocalRules(t *testing.T) {
	store := &fakeStore{categories: testCategories, sum: decimal.RequireFromString("250.00")}
	agent := &fakeAgent{result: &AgentResult{Intent: "drop_table"}}
	r := testResolver(store, agent)

	ans, err := r.Resolve(context.Background(), 9, "how much income did I earn in March?")
	require.NoError(t, err)
	assert.Equal(t, IntentTotalIncome, ans.Intent)
}

func TestAgentUnknownCategoryFallsBackToLocalRules(t *testing.T) {
	store := &fakeStore{categories: testCategories, sum: decimal.RequireFromString("75.00")}
	agent := &fakeAgent{result: &AgentResult{Intent: "category_total", Category: "Yachts"}}
	r := testResolver(store, agent)

	ans, err := r.Resolve(context.Background(), 9, "what did I spend on food")
	require.NoError(t, err)
	assert.Equal(t, IntentCategoryTotal, ans.Intent)
	assert.Contains(t, ans.Summary, "Food")
}

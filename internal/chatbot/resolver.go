// Package chatbot turns natural-language questions about a user's finances
// into bounded, parameterized aggregate queries. Questions are only ever
// answered within the requesting user's data: the user id comes from the
// authenticated session and every entity value is bound as a query parameter.
package chatbot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

// Store is the slice of persistence the resolver queries. Every method takes
// the user id explicitly; there is no way to express an unscoped query.
type Store interface {
	Categories(ctx context.Context) ([]models.Category, error)
	SumTransactions(ctx context.Context, userID int, txType string, categoryID, month, year int) (decimal.Decimal, error)
	SpendByCategory(ctx context.Context, userID, month, year int) ([]models.CategoryTotal, error)
	MonthlyTotalsByType(ctx context.Context, userID int, txType string, year int) ([]models.MonthTotal, error)
}

// Answer is what the UI renders: a one-line summary plus the raw rows.
type Answer struct {
	Understood bool       `json:"understood"`
	Intent     Intent     `json:"intent"`
	Summary    string     `json:"summary"`
	Columns    []string   `json:"columns,omitempty"`
	Rows       [][]string `json:"rows,omitempty"`
	Examples   []string   `json:"examples,omitempty"`
}

var exampleQuestions = []string{
	"Show my total expenses this month",
	"How much income did I receive in March?",
	"What did I spend on Food?",
	"Show my spending by category",
	"Compare my expenses across months",
}

type Resolver struct {
	store        Store
	agent        Agent // optional; nil means local classification only
	agentTimeout time.Duration

	// Now is swappable so tests can pin "this month".
	Now func() time.Time
}

func NewResolver(store Store, agent Agent, agentTimeout time.Duration) *Resolver {
	return &Resolver{
		store:        store,
		agent:        agent,
		agentTimeout: agentTimeout,
		Now:          time.Now,
	}
}

// Resolve answers one question for one user. The agent, when configured, only
// replaces classification and entity extraction; query building and execution
// stay local, so a misbehaving model can never widen the data a question
// reaches.
func (r *Resolver) Resolve(ctx context.Context, userID int, question string) (*Answer, error) {
	categories, err := r.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %v", err)
	}

	norm := normalize(question)
	now := r.Now()

	intent, ents, ok := r.classifyWithAgent(ctx, question, categories, now)
	if !ok {
		ents = extractEntities(norm, categories, now)
		intent = classify(norm, ents)
	}

	switch intent {
	case IntentGreeting:
		return &Answer{
			Understood: true,
			Intent:     IntentGreeting,
			Summary:    "Hello! Ask me about your income, expenses or category spending.",
			Examples:   exampleQuestions,
		}, nil
	case IntentTotalExpense:
		return r.answerTotal(ctx, userID, "expense", ents)
	case IntentTotalIncome:
		return r.answerTotal(ctx, userID, "income", ents)
	case IntentCategoryTotal:
		return r.answerCategoryTotal(ctx, userID, ents)
	case IntentSpendByCategory:
		return r.answerSpendByCategory(ctx, userID, ents)
	case IntentCompareMonths:
		return r.answerCompareMonths(ctx, userID, ents, now)
	default:
		return &Answer{
			Understood: false,
			Intent:     IntentUnknown,
			Summary:    "Sorry, I could not understand that question. Here are some things you can ask:",
			Examples:   exampleQuestions,
		}, nil
	}
}

// classifyWithAgent delegates to the external model when one is configured.
// Any failure (network, timeout, unparseable output) degrades to the local
// keyword classifier rather than surfacing an error to the user.
func (r *Resolver) classifyWithAgent(ctx context.Context, question string, categories []models.Category, now time.Time) (Intent, Entities, bool) {
	if r.agent == nil {
		return IntentUnknown, Entities{}, false
	}

	agentCtx, cancel := context.WithTimeout(ctx, r.agentTimeout)
	defer cancel()

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}

	result, err := r.agent.Classify(agentCtx, question, names)
	if err != nil {
		log.Printf("chatbot: agent classification failed, using local classifier: %v", err)
		return IntentUnknown, Entities{}, false
	}

	intent := Intent(result.Intent)
	switch intent {
	case IntentGreeting, IntentTotalExpense, IntentTotalIncome, IntentSpendByCategory, IntentCategoryTotal, IntentCompareMonths:
	default:
		log.Printf("chatbot: agent returned unrecognized intent %q, using local classifier", result.Intent)
		return IntentUnknown, Entities{}, false
	}

	var ents Entities
	if result.Month != "" {
		if m, found := monthNames[strings.ToLower(result.Month)]; found {
			ents.Month = int(m)
			ents.Year = now.Year()
		}
	}
	if result.Category != "" {
		want := strings.ToLower(result.Category)
		for i := range categories {
			if strings.ToLower(categories[i].Name) == want {
				ents.Category = &categories[i]
				break
			}
		}
		if ents.Category == nil {
			log.Printf("chatbot: agent named unknown category %q, using local classifier", result.Category)
			return IntentUnknown, Entities{}, false
		}
	}
	if result.Type == "income" || result.Type == "expense" {
		ents.TxType = result.Type
	}
	if intent == IntentCategoryTotal && ents.Category == nil {
		return IntentUnknown, Entities{}, false
	}
	return intent, ents, true
}

func (r *Resolver) answerTotal(ctx context.Context, userID int, txType string, ents Entities) (*Answer, error) {
	total, err := r.store.SumTransactions(ctx, userID, txType, 0, ents.Month, ents.Year)
	if err != nil {
		return nil, fmt.Errorf("summing %s: %v", txType, err)
	}

	verb := "spent"
	column := "total_expense"
	intent := IntentTotalExpense
	if txType == "income" {
		verb = "received"
		column = "total_income"
		intent = IntentTotalIncome
	}

	return &Answer{
		Understood: true,
		Intent:     intent,
		Summary:    fmt.Sprintf("You %s ₹%s%s.", verb, total.StringFixed(2), periodSuffix(ents)),
		Columns:    []string{column},
		Rows:       [][]string{{total.StringFixed(2)}},
	}, nil
}

func (r *Resolver) answerCategoryTotal(ctx context.Context, userID int, ents Entities) (*Answer, error) {
	txType := ents.TxType
	if txType == "" {
		txType = "expense"
	}

	total, err := r.store.SumTransactions(ctx, userID, txType, ents.Category.ID, ents.Month, ents.Year)
	if err != nil {
		return nil, fmt.Errorf("summing category %d: %v", ents.Category.ID, err)
	}

	verb := "spent"
	if txType == "income" {
		verb = "received"
	}
	return &Answer{
		Understood: true,
		Intent:     IntentCategoryTotal,
		Summary:    fmt.Sprintf("You %s ₹%s on %s%s.", verb, total.StringFixed(2), ents.Category.Name, periodSuffix(ents)),
		Columns:    []string{"category", "total"},
		Rows:       [][]string{{ents.Category.Name, total.StringFixed(2)}},
	}, nil
}

func (r *Resolver) answerSpendByCategory(ctx context.Context, userID int, ents Entities) (*Answer, error) {
	totals, err := r.store.SpendByCategory(ctx, userID, ents.Month, ents.Year)
	if err != nil {
		return nil, fmt.Errorf("grouping spend by category: %v", err)
	}
	if len(totals) == 0 {
		return noMatchingData(IntentSpendByCategory), nil
	}

	rows := make([][]string, len(totals))
	for i, t := range totals {
		rows[i] = []string{t.Category, t.Total.StringFixed(2)}
	}
	return &Answer{
		Understood: true,
		Intent:     IntentSpendByCategory,
		Summary: fmt.Sprintf("Your biggest spending category%s is %s at ₹%s.",
			periodSuffix(ents), totals[0].Category, totals[0].Total.StringFixed(2)),
		Columns: []string{"category", "total"},
		Rows:    rows,
	}, nil
}

func (r *Resolver) answerCompareMonths(ctx context.Context, userID int, ents Entities, now time.Time) (*Answer, error) {
	txType := ents.TxType
	if txType == "" {
		txType = "expense"
	}
	year := ents.Year
	if year == 0 {
		year = now.Year()
	}

	totals, err := r.store.MonthlyTotalsByType(ctx, userID, txType, year)
	if err != nil {
		return nil, fmt.Errorf("comparing months: %v", err)
	}
	if len(totals) == 0 {
		return noMatchingData(IntentCompareMonths), nil
	}

	highest := totals[0]
	for _, t := range totals[1:] {
		if t.Total.GreaterThan(highest.Total) {
			highest = t
		}
	}

	rows := make([][]string, len(totals))
	for i, t := range totals {
		rows[i] = []string{t.Month, t.Total.StringFixed(2)}
	}
	noun := "spending"
	if txType == "income" {
		noun = "income"
	}
	return &Answer{
		Understood: true,
		Intent:     IntentCompareMonths,
		Summary:    fmt.Sprintf("Your highest %s in %d was in %s at ₹%s.", noun, year, highest.Month, highest.Total.StringFixed(2)),
		Columns:    []string{"month", "total"},
		Rows:       rows,
	}, nil
}

func noMatchingData(intent Intent) *Answer {
	return &Answer{
		Understood: true,
		Intent:     intent,
		Summary:    "No matching data found for your question.",
	}
}

func periodSuffix(ents Entities) string {
	if ents.Month == 0 {
		return ""
	}
	return fmt.Sprintf(" in %s %d", time.Month(ents.Month).String(), ents.Year)
}

// Package budget evaluates spend against monthly category budgets and
// records warning/exceeded alerts.
package budget

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

type Status string

const (
	StatusNoBudget Status = "no_budget"
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

var warningRatio = decimal.New(9, -1) // 0.9

// Store is the slice of persistence the engine needs.
type Store interface {
	ActiveBudget(ctx context.Context, userID, categoryID, month int) (*models.Budget, error)
	ActiveBudgets(ctx context.Context, userID, month int) ([]models.Budget, error)
	TotalSpent(ctx context.Context, userID, categoryID, month, year int) (decimal.Decimal, error)
	CategoryName(ctx context.Context, categoryID int) (string, error)
	SaveAlert(ctx context.Context, alert *models.Alert) error
}

// Result carries the classification plus the figures the UI shows without a
// second round trip.
type Result struct {
	Status     Status          `json:"status"`
	BudgetID   int             `json:"budget_id,omitempty"`
	CategoryID int             `json:"category_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percent    decimal.Decimal `json:"percent"`
}

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Classify compares total spend against a limit. Both thresholds are
// inclusive: spending exactly the limit is exceeded, exactly 90% of it is a
// warning.
func Classify(spent, limit decimal.Decimal) Status {
	switch {
	case spent.GreaterThanOrEqual(limit):
		return StatusExceeded
	case spent.GreaterThanOrEqual(limit.Mul(warningRatio)):
		return StatusWarning
	default:
		return StatusOK
	}
}

// Evaluate checks one (user, category, month, year) scope. A missing budget
// is a normal outcome, not an error. Alerts are written only on warning or
// exceeded; an ok result never retracts earlier alerts.
func (e *Engine) Evaluate(ctx context.Context, userID, categoryID, month, year int) (*Result, error) {
	b, err := e.store.ActiveBudget(ctx, userID, categoryID, month)
	if err != nil {
		return nil, fmt.Errorf("looking up budget for user %d category %d month %d: %v", userID, categoryID, month, err)
	}
	if b == nil {
		return &Result{
			Status:     StatusNoBudget,
			CategoryID: categoryID,
			Month:      month,
			Year:       year,
		}, nil
	}
	return e.evaluateBudget(ctx, b, year)
}

func (e *Engine) evaluateBudget(ctx context.Context, b *models.Budget, year int) (*Result, error) {
	spent, err := e.store.TotalSpent(ctx, b.UserID, b.CategoryID, b.Month, year)
	if err != nil {
		return nil, fmt.Errorf("summing spend for budget %d: %v", b.ID, err)
	}

	result := &Result{
		Status:     Classify(spent, b.LimitAmount),
		BudgetID:   b.ID,
		CategoryID: b.CategoryID,
		Month:      b.Month,
		Year:       year,
		Limit:      b.LimitAmount,
		Spent:      spent,
		Remaining:  b.LimitAmount.Sub(spent),
		Percent:    percentOf(spent, b.LimitAmount),
	}

	if result.Status == StatusWarning || result.Status == StatusExceeded {
		if err := e.writeAlert(ctx, b, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// EvaluateAll rechecks every active budget the user holds for the month.
// Scopes are independent; a failure in one is collected and the rest carry on.
func (e *Engine) EvaluateAll(ctx context.Context, userID, month, year int) ([]ScopeResult, error) {
	budgets, err := e.store.ActiveBudgets(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("listing active budgets for user %d month %d: %v", userID, month, err)
	}

	results := make([]ScopeResult, 0, len(budgets))
	for i := range budgets {
		b := &budgets[i]
		r, err := e.evaluateBudget(ctx, b, year)
		if err != nil {
			log.Printf("budget %d evaluation failed: %v", b.ID, err)
			results = append(results, ScopeResult{CategoryID: b.CategoryID, BudgetID: b.ID, Err: err})
			continue
		}
		results = append(results, ScopeResult{CategoryID: b.CategoryID, BudgetID: b.ID, Result: r})
	}
	return results, nil
}

type ScopeResult struct {
	CategoryID int
	BudgetID   int
	Result     *Result
	Err        error
}

func (e *Engine) writeAlert(ctx context.Context, b *models.Budget, r *Result) error {
	name, err := e.store.CategoryName(ctx, b.CategoryID)
	if err != nil {
		// the message is worse without the name, the alert is not
		log.Printf("category %d name lookup failed: %v", b.CategoryID, err)
		name = fmt.Sprintf("category %d", b.CategoryID)
	}

	monthName := time.Month(b.Month).String()
	var message string
	switch r.Status {
	case StatusExceeded:
		message = fmt.Sprintf("Budget exceeded: you have spent ₹%s of your ₹%s %s budget for %s.",
			r.Spent.StringFixed(2), r.Limit.StringFixed(2), name, monthName)
	case StatusWarning:
		message = fmt.Sprintf("Budget warning: you have used %s%% of your ₹%s %s budget for %s (₹%s remaining).",
			r.Percent.StringFixed(2), r.Limit.StringFixed(2), name, monthName, r.Remaining.StringFixed(2))
	}

	alert := &models.Alert{
		UserID:     b.UserID,
		BudgetID:   &b.ID,
		CategoryID: &b.CategoryID,
		Message:    message,
		AlertType:  string(r.Status),
	}
	if err := e.store.SaveAlert(ctx, alert); err != nil {
		return fmt.Errorf("saving alert for budget %d: %v", b.ID, err)
	}
	return nil
}

func percentOf(spent, limit decimal.Decimal) decimal.Decimal {
	if limit.IsZero() {
		return decimal.Zero
	}
	return spent.Div(limit).Mul(decimal.NewFromInt(100)).Round(2)
}

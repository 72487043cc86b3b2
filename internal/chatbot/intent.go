package chatbot

import (
	"strings"
	"time"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

// Intent is the classified purpose of a question. The set is fixed; anything
// outside it is IntentUnknown and answered with the help text, never a guess.
type Intent string

const (
	IntentUnknown         Intent = "unknown"
	IntentGreeting        Intent = "greeting"
	IntentTotalExpense    Intent = "total_expense"
	IntentTotalIncome     Intent = "total_income"
	IntentSpendByCategory Intent = "spend_by_category"
	IntentCategoryTotal   Intent = "category_total"
	IntentCompareMonths   Intent = "compare_months"
)

// Entities are the filters pulled out of the question. Zero values mean "no
// filter". The requesting user is deliberately absent: scoping comes from the
// session, never from text.
type Entities struct {
	Month    int
	Year     int
	Category *models.Category
	TxType   string
}

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	expenseWords  = []string{"expense", "expenses", "spend", "spent", "spending", "spendings", "cost", "costs", "paid", "pay"}
	incomeWords   = []string{"income", "earned", "earn", "earnings", "salary", "received", "revenue"}
	greetingWords = []string{"hi", "hello", "hey", "namaste", "good morning", "good evening"}
)

// normalize case-folds the question and strips punctuation so keyword
// matching sees plain space-separated tokens.
func normalize(question string) string {
	lowered := strings.ToLower(strings.TrimSpace(question))
	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func containsAny(norm string, words []string) bool {
	tokens := " " + norm + " "
	for _, w := range words {
		if strings.Contains(tokens, " "+w+" ") {
			return true
		}
	}
	return false
}

// extractEntities pulls the date range, category and transaction type out of
// a normalized question. Month names mean that month of the current year;
// "this month" and "last month" are relative to now.
func extractEntities(norm string, categories []models.Category, now time.Time) Entities {
	var ents Entities

	switch {
	case strings.Contains(norm, "this month"), strings.Contains(norm, "current month"):
		ents.Month = int(now.Month())
		ents.Year = now.Year()
	case strings.Contains(norm, "last month"), strings.Contains(norm, "previous month"):
		prev := now.AddDate(0, -1, 0)
		ents.Month = int(prev.Month())
		ents.Year = prev.Year()
	default:
		for token, month := range monthNames {
			if containsAny(norm, []string{token}) {
				ents.Month = int(month)
				ents.Year = now.Year()
				break
			}
		}
	}

	// longest category name wins so "food delivery" beats "food"
	for i := range categories {
		name := strings.ToLower(categories[i].Name)
		if name == "" || !strings.Contains(norm, name) {
			continue
		}
		if ents.Category == nil || len(name) > len(ents.Category.Name) {
			ents.Category = &categories[i]
		}
	}

	switch {
	case containsAny(norm, incomeWords):
		ents.TxType = "income"
	case containsAny(norm, expenseWords):
		ents.TxType = "expense"
	}

	return ents
}

// classify maps a normalized question plus its entities to an intent using
// keyword rules. It never falls through to a guess: no recognized signal
// means IntentUnknown.
func classify(norm string, ents Entities) Intent {
	if norm == "" {
		return IntentUnknown
	}
	if containsAny(norm, greetingWords) && ents.TxType == "" && ents.Category == nil {
		return IntentGreeting
	}

	hasMoneyWord := ents.TxType != ""

	if containsAny(norm, []string{"compare", "comparison", "versus", "vs", "across months", "month wise", "monthly"}) && hasMoneyWord {
		return IntentCompareMonths
	}
	if strings.Contains(norm, "by category") || strings.Contains(norm, "each category") ||
		strings.Contains(norm, "category wise") || strings.Contains(norm, "per category") ||
		strings.Contains(norm, "breakdown") {
		return IntentSpendByCategory
	}
	if ents.Category != nil && (hasMoneyWord || strings.Contains(norm, "total") || strings.Contains(norm, "how much")) {
		return IntentCategoryTotal
	}
	if ents.TxType == "income" {
		return IntentTotalIncome
	}
	if ents.TxType == "expense" {
		return IntentTotalExpense
	}
	return IntentUnknown
}

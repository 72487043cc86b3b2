// Package analytics builds spending trends, a next-month forecast and savings
// recommendations from monthly per-category expense totals.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

// categoryNecessity labels the well-known categories; anything unlisted is
// treated as discretionary, which makes it eligible for cut recommendations.
var categoryNecessity = map[string]string{
	"Food":          "necessary",
	"Rent":          "necessary",
	"Utilities":     "necessary",
	"Health":        "necessary",
	"Entertainment": "discretionary",
	"Travel":        "discretionary",
	"Shopping":      "discretionary",
	"Miscellaneous": "discretionary",
}

const (
	NecessityNecessary     = "necessary"
	NecessityDiscretionary = "discretionary"
)

// DefaultRecommendThreshold is the predicted monthly amount above which a
// discretionary category draws a cut recommendation.
var DefaultRecommendThreshold = decimal.NewFromInt(100)

type CategoryForecast struct {
	Category  string          `json:"category"`
	Predicted decimal.Decimal `json:"predicted"`
}

type Recommendation struct {
	Category  string          `json:"category"`
	Necessity string          `json:"necessity"`
	Predicted decimal.Decimal `json:"predicted"`
	Advice    string          `json:"advice"`
}

// Forecast fits a straight line through each category's monthly totals and
// extrapolates one month ahead. Months a category has no rows for count as
// zero spend. A single month of history predicts that month's value.
func Forecast(rows []models.MonthCategoryTotal) []CategoryForecast {
	if len(rows) == 0 {
		return nil
	}

	monthSet := map[string]bool{}
	cells := map[string]map[string]decimal.Decimal{}
	for _, row := range rows {
		monthSet[row.Month] = true
		if cells[row.Category] == nil {
			cells[row.Category] = map[string]decimal.Decimal{}
		}
		cells[row.Category][row.Month] = cells[row.Category][row.Month].Add(row.Total)
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	categories := make([]string, 0, len(cells))
	for c := range cells {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	forecasts := make([]CategoryForecast, 0, len(categories))
	for _, category := range categories {
		series := make([]float64, len(months))
		for i, month := range months {
			series[i] = cells[category][month].InexactFloat64()
		}
		intercept, slope := leastSquares(series)
		predicted := intercept + slope*float64(len(series))
		forecasts = append(forecasts, CategoryForecast{
			Category:  category,
			Predicted: decimal.NewFromFloat(predicted).Round(2),
		})
	}
	return forecasts
}

// leastSquares fits y = intercept + slope*x over x = 0..n-1. With fewer than
// two points the slope is zero and the intercept is the mean.
func leastSquares(ys []float64) (intercept, slope float64) {
	n := float64(len(ys))
	if n == 0 {
		return 0, 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return sumY / n, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return intercept, slope
}

// Recommend turns a forecast into per-category advice: discretionary
// categories predicted above the threshold get a cut suggestion, everything
// else gets a keep-as-is note.
func Recommend(forecasts []CategoryForecast, threshold decimal.Decimal) []Recommendation {
	recs := make([]Recommendation, 0, len(forecasts))
	for _, f := range forecasts {
		necessity, ok := categoryNecessity[f.Category]
		if !ok {
			necessity = NecessityDiscretionary
		}

		rec := Recommendation{
			Category:  f.Category,
			Necessity: necessity,
			Predicted: f.Predicted,
		}
		if necessity == NecessityDiscretionary && f.Predicted.GreaterThan(threshold) {
			rec.Advice = "Consider reducing spending in this discretionary category: predicted ₹" +
				f.Predicted.StringFixed(2) + " next month."
		} else {
			rec.Advice = "Predicted ₹" + f.Predicted.StringFixed(2) + " next month. No major cuts recommended."
		}
		recs = append(recs, rec)
	}
	return recs
}

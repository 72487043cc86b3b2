package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

func cell(month, category, total string) models.MonthCategoryTotal {
	return models.MonthCategoryTotal{
		Month:    month,
		Category: category,
		Total:    decimal.RequireFromString(total),
	}
}

func forecastFor(t *testing.T, forecasts []CategoryForecast, category string) CategoryForecast {
	t.Helper()
	for _, f := range forecasts {
		if f.Category == category {
			return f
		}
	}
	t.Fatalf("no forecast for category %q", category)
	return CategoryForecast{}
}

func TestForecastEmptyHistory(t *testing.T) {
	assert.Nil(t, Forecast(nil))
}

func TestForecastLinearTrend(t *testing.T) {
	rows := []models.MonthCategoryTotal{
		cell("2025-01", "Food", "100.00"),
		cell("2025-02", "Food", "200.00"),
		cell("2025-03", "Food", "300.00"),
	}
	got := forecastFor(t, Forecast(rows), "Food")
	assert.True(t, got.Predicted.Equal(decimal.RequireFromString("400.00")),
		"predicted %s", got.Predicted)
}

func TestForecastFlatSpendStaysFlat(t *testing.T) {
	rows := []models.MonthCategoryTotal{
		cell("2025-01", "Rent", "9000.00"),
		cell("2025-02", "Rent", "9000.00"),
		cell("2025-03", "Rent", "9000.00"),
	}
	got := forecastFor(t, Forecast(rows), "Rent")
	assert.True(t, got.Predicted.Equal(decimal.RequireFromString("9000.00")))
}

func TestForecastSingleMonthRepeatsIt(t *testing.T) {
	rows := []models.MonthCategoryTotal{cell("2025-03", "Travel", "750.00")}
	got := forecastFor(t, Forecast(rows), "Travel")
	assert.True(t, got.Predicted.Equal(decimal.RequireFromString("750.00")))
}

func TestForecastMissingMonthsCountAsZero(t *testing.T) {
	// Shopping only appears in the first of three months, so the fitted
	// line slopes down toward zero.
	rows := []models.MonthCategoryTotal{
		cell("2025-01", "Food", "100.00"),
		cell("2025-02", "Food", "100.00"),
		cell("2025-03", "Food", "100.00"),
		cell("2025-01", "Shopping", "600.00"),
	}
	got := forecastFor(t, Forecast(rows), "Shopping")
	assert.True(t, got.Predicted.LessThan(decimal.Zero),
		"declining series should extrapolate below zero, got %s", got.Predicted)
}

func TestRecommendSplitsByNecessity(t *testing.T) {
	forecasts := []CategoryForecast{
		{Category: "Rent", Predicted: decimal.RequireFromString("9000.00")},
		{Category: "Entertainment", Predicted: decimal.RequireFromString("850.00")},
		{Category: "Travel", Predicted: decimal.RequireFromString("40.00")},
	}
	recs := Recommend(forecasts, DefaultRecommendThreshold)
	require.Len(t, recs, 3)

	byCat := map[string]Recommendation{}
	for _, r := range recs {
		byCat[r.Category] = r
	}

	assert.Equal(t, NecessityNecessary, byCat["Rent"].Necessity)
	assert.Contains(t, byCat["Rent"].Advice, "No major cuts")

	assert.Equal(t, NecessityDiscretionary, byCat["Entertainment"].Necessity)
	assert.Contains(t, byCat["Entertainment"].Advice, "reducing spending")

	// discretionary but below threshold
	assert.Contains(t, byCat["Travel"].Advice, "No major cuts")
}

func TestRecommendUnknownCategoryIsDiscretionary(t *testing.T) {
	recs := Recommend([]CategoryForecast{
		{Category: "Gadgets", Predicted: decimal.RequireFromString("500.00")},
	}, DefaultRecommendThreshold)
	require.Len(t, recs, 1)
	assert.Equal(t, NecessityDiscretionary, recs[0].Necessity)
	assert.Contains(t, recs[0].Advice, "reducing spending")
}

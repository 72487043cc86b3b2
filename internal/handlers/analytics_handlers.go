package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunkrishnadas/expense-tracker/internal/analytics"
	"github.com/arjunkrishnadas/expense-tracker/internal/database"
	"github.com/arjunkrishnadas/expense-tracker/internal/middleware"
)

// AnalyticsSummaryHandler returns income/expense totals, top spending
// categories and the monthly trend for the requested period.
func AnalyticsSummaryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		period := c.DefaultQuery("period", "last_6_months")
		topN, _ := strconv.Atoi(c.DefaultQuery("top", "3"))
		if topN < 1 || topN > 20 {
			topN = 3
		}

		summary, err := database.GetIncomeExpenseSummary(c.Request.Context(), pool, userID, period)
		if err != nil {
			log.Printf("income/expense summary for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build summary"})
			return
		}

		topCategories, err := database.GetTopCategories(c.Request.Context(), pool, userID, period, topN)
		if err != nil {
			log.Printf("top categories for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build summary"})
			return
		}

		incomeTrend, expenseTrend, err := database.GetMonthlyTrend(c.Request.Context(), pool, userID, period)
		if err != nil {
			log.Printf("monthly trend for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build summary"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"period":         period,
			"totals":         summary,
			"top_categories": topCategories,
			"income_trend":   incomeTrend,
			"expense_trend":  expenseTrend,
		})
	}
}

// AnalyticsForecastHandler predicts next month's spend per category from the
// caller's full expense history and attaches savings recommendations.
func AnalyticsForecastHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		history, err := database.GetMonthlyCategoryTotals(c.Request.Context(), pool, userID)
		if err != nil {
			log.Printf("forecast history for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build forecast"})
			return
		}
		if len(history) == 0 {
			c.JSON(http.StatusOK, gin.H{"forecast": []analytics.CategoryForecast{}, "recommendations": []analytics.Recommendation{}})
			return
		}

		forecast := analytics.Forecast(history)
		recommendations := analytics.Recommend(forecast, analytics.DefaultRecommendThreshold)
		c.JSON(http.StatusOK, gin.H{"forecast": forecast, "recommendations": recommendations})
	}
}

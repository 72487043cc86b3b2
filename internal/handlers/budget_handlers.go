package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunkrishnadas/expense-tracker/internal/budget"
	"github.com/arjunkrishnadas/expense-tracker/internal/database"
	"github.com/arjunkrishnadas/expense-tracker/internal/middleware"
	"github.com/arjunkrishnadas/expense-tracker/models"
)

func CreateBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var b models.Budget
		if err := c.ShouldBindJSON(&b); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input data"})
			return
		}
		b.UserID = middleware.UserID(c)
		if b.Month < 1 || b.Month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
			return
		}
		if !b.LimitAmount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit_amount must be positive"})
			return
		}
		if b.Status == "" {
			b.Status = "active"
		}

		if err := database.CreateBudget(c.Request.Context(), pool, &b); err != nil {
			log.Printf("creating budget for user %d: %v", b.UserID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create budget"})
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

func GetBudgetsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		budgets, err := database.GetBudgetsByUserID(c.Request.Context(), pool, middleware.UserID(c))
		if err != nil {
			log.Printf("listing budgets: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load budgets"})
			return
		}
		c.JSON(http.StatusOK, budgets)
	}
}

// BudgetStatusHandler evaluates every active budget the caller has for the
// requested month (default: the current one) and returns per-scope results.
func BudgetStatusHandler(engine *budget.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
		year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
		if month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
			return
		}

		results, err := engine.EvaluateAll(c.Request.Context(), middleware.UserID(c), month, year)
		if err != nil {
			log.Printf("evaluating budgets: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not evaluate budgets"})
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func UpdateBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, ok := loadOwnedBudget(c, pool)
		if !ok {
			return
		}

		var updated models.Budget
		if err := c.ShouldBindJSON(&updated); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input data"})
			return
		}
		updated.ID = existing.ID
		updated.UserID = existing.UserID
		if updated.Month < 1 || updated.Month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
			return
		}
		if !updated.LimitAmount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit_amount must be positive"})
			return
		}
		if updated.Status != "active" && updated.Status != "inactive" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be 'active' or 'inactive'"})
			return
		}

		if err := database.UpdateBudget(c.Request.Context(), pool, &updated); err != nil {
			log.Printf("updating budget %d: %v", updated.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update budget"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, ok := loadOwnedBudget(c, pool)
		if !ok {
			return
		}

		if err := database.DeleteBudget(c.Request.Context(), pool, existing.ID); err != nil {
			log.Printf("deleting budget %d: %v", existing.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete budget"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "budget deleted"})
	}
}

func loadOwnedBudget(c *gin.Context, pool *pgxpool.Pool) (*models.Budget, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return nil, false
	}

	b, err := database.GetBudgetByID(c.Request.Context(), pool, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
		return nil, false
	}
	if b.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
		return nil, false
	}
	return b, true
}

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

func CreateTransactionHandler(pool *pgxpool.Pool, engine *budget.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var transaction models.Transaction
		if err := c.ShouldBindJSON(&transaction); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input data"})
			return
		}
		transaction.UserID = middleware.UserID(c)
		if transaction.Type != "income" && transaction.Type != "expense" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be 'income' or 'expense'"})
			return
		}
		if !transaction.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		if transaction.Date.IsZero() {
			transaction.Date = time.Now()
		}

		if err := database.CreateTransaction(c.Request.Context(), pool, &transaction); err != nil {
			log.Printf("creating transaction for user %d: %v", transaction.UserID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create transaction"})
			return
		}

		resp := gin.H{"transaction": transaction}
		if result := evaluateScope(c, engine, &transaction); result != nil {
			resp["budget"] = result
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// evaluateScope rechecks the budget for an expense's month and category.
// Evaluation failures are logged and swallowed: the transaction is already
// committed and the daily recheck will catch up.
func evaluateScope(c *gin.Context, engine *budget.Engine, t *models.Transaction) *budget.Result {
	if t.Type != "expense" {
		return nil
	}
	result, err := engine.Evaluate(c.Request.Context(), t.UserID, t.CategoryID, int(t.Date.Month()), t.Date.Year())
	if err != nil {
		log.Printf("evaluating budget for user %d category %d: %v", t.UserID, t.CategoryID, err)
		return nil
	}
	return result
}

func GetTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		transactions, err := database.GetTransactionsByUserID(c.Request.Context(), pool, middleware.UserID(c), limit)
		if err != nil {
			log.Printf("listing transactions: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load transactions"})
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

func GetTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		transaction, ok := loadOwnedTransaction(c, pool)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

func UpdateTransactionHandler(pool *pgxpool.Pool, engine *budget.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, ok := loadOwnedTransaction(c, pool)
		if !ok {
			return
		}

		var updated models.Transaction
		if err := c.ShouldBindJSON(&updated); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input data"})
			return
		}
		updated.ID = existing.ID
		updated.UserID = existing.UserID
		if updated.Type != "income" && updated.Type != "expense" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be 'income' or 'expense'"})
			return
		}
		if !updated.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		if updated.Date.IsZero() {
			updated.Date = existing.Date
		}

		if err := database.UpdateTransaction(c.Request.Context(), pool, &updated); err != nil {
			log.Printf("updating transaction %d: %v", updated.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update transaction"})
			return
		}

		// both the old and the new scope may have changed
		evaluateScope(c, engine, existing)
		resp := gin.H{"transaction": updated}
		if result := evaluateScope(c, engine, &updated); result != nil {
			resp["budget"] = result
		}
		c.JSON(http.StatusOK, resp)
	}
}

func DeleteTransactionHandler(pool *pgxpool.Pool, engine *budget.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, ok := loadOwnedTransaction(c, pool)
		if !ok {
			return
		}

		if err := database.DeleteTransaction(c.Request.Context(), pool, existing.ID); err != nil {
			log.Printf("deleting transaction %d: %v", existing.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete transaction"})
			return
		}

		evaluateScope(c, engine, existing)
		c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
	}
}

// loadOwnedTransaction fetches the transaction in the path and enforces that
// the caller owns it (or is an admin). On failure it writes the response and
// returns ok=false.
func loadOwnedTransaction(c *gin.Context, pool *pgxpool.Pool) (*models.Transaction, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return nil, false
	}

	transaction, err := database.GetTransactionByID(c.Request.Context(), pool, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return nil, false
	}
	if transaction.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		// indistinguishable from a missing row on purpose
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return nil, false
	}
	return transaction, true
}

package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunkrishnadas/expense-tracker/internal/database"
	"github.com/arjunkrishnadas/expense-tracker/internal/middleware"
)

// Admin-only endpoints. Routes must wrap these with the AdminOnly middleware.

func GetUsersHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := database.GetAllUsers(c.Request.Context(), pool)
		if err != nil {
			log.Printf("listing users: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func GetUserHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		user, err := database.GetUserByID(c.Request.Context(), pool, id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func UpdateUserRoleHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var req struct {
			Role string `json:"role"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input data"})
			return
		}

		if err := database.UpdateUserRole(c.Request.Context(), pool, id, req.Role); err != nil {
			log.Printf("updating role for user %d: %v", id, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not update role"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "role updated"})
	}
}

func DeleteUserHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		if id == middleware.UserID(c) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
			return
		}

		if err := database.DeleteUser(c.Request.Context(), pool, id); err != nil {
			log.Printf("deleting user %d: %v", id, err)
			c.JSON(http.StatusConflict, gin.H{"error": "could not delete user; data may still reference them"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
	}
}

// AllTransactionsHandler lets admins audit recent activity across all users.
func AllTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
		transactions, err := database.GetAllTransactions(c.Request.Context(), pool, limit)
		if err != nil {
			log.Printf("listing all transactions: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load transactions"})
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

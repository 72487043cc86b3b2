package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunkrishnadas/expense-tracker/internal/database"
	"github.com/arjunkrishnadas/expense-tracker/internal/middleware"
)

func MeHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := database.GetUserByID(c.Request.Context(), pool, middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func UpdateContactHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Contact string `json:"contact"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input data"})
			return
		}

		userID := middleware.UserID(c)
		if err := database.UpdateUserContact(c.Request.Context(), pool, userID, req.Contact); err != nil {
			log.Printf("updating contact for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update contact"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "contact updated"})
	}
}

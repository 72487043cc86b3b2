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

func GetAlertsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		unreadOnly := c.Query("unread") == "true"
		alerts, err := database.GetAlertsByUserID(c.Request.Context(), pool, middleware.UserID(c), unreadOnly)
		if err != nil {
			log.Printf("listing alerts: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load alerts"})
			return
		}
		c.JSON(http.StatusOK, alerts)
	}
}

func MarkAlertReadHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
			return
		}

		if err := database.MarkAlertRead(c.Request.Context(), pool, id, middleware.UserID(c)); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "alert marked as read"})
	}
}

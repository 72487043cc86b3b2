package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunkrishnadas/expense-tracker/internal/database"
	"github.com/arjunkrishnadas/expense-tracker/models"
)

func GetPaymentMethodsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		methods, err := database.GetAllPaymentMethods(c.Request.Context(), pool)
		if err != nil {
			log.Printf("listing payment methods: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load payment methods"})
			return
		}
		c.JSON(http.StatusOK, methods)
	}
}

func CreatePaymentMethodHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var method models.PaymentMethod
		if err := c.ShouldBindJSON(&method); err != nil || method.Type == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment method type is required"})
			return
		}

		if err := database.CreatePaymentMethod(c.Request.Context(), pool, &method); err != nil {
			log.Printf("creating payment method %q: %v", method.Type, err)
			c.JSON(http.StatusConflict, gin.H{"error": "could not create payment method"})
			return
		}
		c.JSON(http.StatusCreated, method)
	}
}

func UpdatePaymentMethodHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method id"})
			return
		}

		var method models.PaymentMethod
		if err := c.ShouldBindJSON(&method); err != nil || method.Type == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment method type is required"})
			return
		}
		method.ID = id

		if err := database.UpdatePaymentMethod(c.Request.Context(), pool, &method); err != nil {
			log.Printf("updating payment method %d: %v", id, err)
			c.JSON(http.StatusNotFound, gin.H{"error": "payment method not found"})
			return
		}
		c.JSON(http.StatusOK, method)
	}
}

func DeletePaymentMethodHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method id"})
			return
		}

		if err := database.DeletePaymentMethod(c.Request.Context(), pool, id); err != nil {
			log.Printf("deleting payment method %d: %v", id, err)
			c.JSON(http.StatusConflict, gin.H{"error": "could not delete payment method"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "payment method deleted"})
	}
}

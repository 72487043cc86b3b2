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

// Categories are shared across all users; only admins may change them.

func GetCategoriesHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := database.GetAllCategories(c.Request.Context(), pool)
		if err != nil {
			log.Printf("listing categories: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func CreateCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := c.ShouldBindJSON(&category); err != nil || category.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category name is required"})
			return
		}

		if err := database.CreateCategory(c.Request.Context(), pool, &category); err != nil {
			log.Printf("creating category %q: %v", category.Name, err)
			c.JSON(http.StatusConflict, gin.H{"error": "could not create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		var category models.Category
		if err := c.ShouldBindJSON(&category); err != nil || category.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category name is required"})
			return
		}
		category.ID = id

		if err := database.UpdateCategory(c.Request.Context(), pool, &category); err != nil {
			log.Printf("updating category %d: %v", id, err)
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func DeleteCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		if err := database.DeleteCategory(c.Request.Context(), pool, id); err != nil {
			log.Printf("deleting category %d: %v", id, err)
			c.JSON(http.StatusConflict, gin.H{"error": "could not delete category; transactions may still reference it"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
	}
}

package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjunkrishnadas/expense-tracker/internal/chatbot"
	"github.com/arjunkrishnadas/expense-tracker/internal/middleware"
)

func ChatHandler(resolver *chatbot.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Question string `json:"question"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
			return
		}

		answer, err := resolver.Resolve(c.Request.Context(), middleware.UserID(c), req.Question)
		if err != nil {
			log.Printf("resolving question for user %d: %v", middleware.UserID(c), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not answer the question"})
			return
		}
		c.JSON(http.StatusOK, answer)
	}
}

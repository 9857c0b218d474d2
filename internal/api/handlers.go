package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"chat_model":      cfg.Chat.Model.Name,
			"extractor":       cfg.Extractor.Enabled,
			"embedding_model": cfg.Embedding.Model,
			"collection":      cfg.Qdrant.Collection,
		})
	}
}

// Helper to extract user ID from context
func getUserIDFromContext(c *gin.Context) (uint, bool) {
	idVal, exists := c.Get("userId")
	if !exists {
		return 0, false
	}
	switch v := idVal.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

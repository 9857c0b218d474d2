package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/memory"
)

// POST /memories/search — semantic search over the caller's own memories.
func SearchMemoriesHandler(cfg *config.Config, pipeline *memory.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req struct {
			Query      string   `json:"query"`
			Categories []string `json:"categories"`
			TopK       int      `json:"top_k"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query required"})
			return
		}
		topK := req.TopK
		if topK <= 0 {
			topK = cfg.Memory.TopK
		}

		retrieved, err := pipeline.Recall(c.Request.Context(), int64(userID), req.Query, req.Categories, topK)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "memory store unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"memories":  retrieved,
			"formatted": memory.FormatRetrieved(retrieved),
		})
	}
}

// GET /memories/categories — the category labels seen so far this process.
func ListCategoriesHandler(pipeline *memory.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": pipeline.Registry.Labels()})
	}
}

// DELETE /memories — administrative delete by point id.
func DeleteMemoriesHandler(pipeline *memory.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PointIDs []string `json:"point_ids"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || len(req.PointIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "point_ids required"})
			return
		}
		if err := pipeline.Storage.Delete(c.Request.Context(), req.PointIDs); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "memory store unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": len(req.PointIDs)})
	}
}

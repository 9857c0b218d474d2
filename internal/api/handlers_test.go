package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", healthHandler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestDeleteMemoriesHandler_RequiresPointIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/memories", DeleteMemoriesHandler(nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/memories", strings.NewReader(`{"point_ids": []}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty point_ids, got %d", w.Code)
	}
}

func TestSearchMemoriesHandler_RequiresQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/memories/search", func(c *gin.Context) {
		c.Set("userId", uint(1))
		c.Next()
	}, SearchMemoriesHandler(nil, nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/memories/search", strings.NewReader(`{"query": ""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty query, got %d", w.Code)
	}
}

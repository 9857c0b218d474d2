package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/auth"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/dialogue"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/llm"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsChatRequest struct {
	Prompt string `json:"prompt"`
}

type wsChatResponse struct {
	Answer            string `json:"answer"`
	MemoryContext     string `json:"memory_context"`
	ExtractedMemories int    `json:"extracted_memories"`
}

// WSChatHandler runs an interactive conversation over one WebSocket
// connection. History lives in the connection; memories persist across it.
func WSChatHandler(cfg *config.Config, engine *dialogue.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing JWT"})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")
		claims, err := auth.ParseJWT(cfg.Server.JWTSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid JWT"})
			return
		}

		conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		defer conn.Close()

		var history []llm.Message
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req wsChatRequest
			if err := json.Unmarshal(raw, &req); err != nil || req.Prompt == "" {
				conn.WriteJSON(map[string]string{"error": "missing prompt"})
				continue
			}

			ctx := c.Request.Context()
			start := time.Now()
			result, err := engine.RunTurn(ctx, int64(claims.UserID), history, req.Prompt)
			if err != nil {
				conn.WriteJSON(map[string]string{"error": "completion failed"})
				continue
			}
			log.Printf("[WSChat] Turn for user %d took %s", claims.UserID, time.Since(start))

			history = append(history,
				llm.Message{Role: llm.RoleUser, Content: req.Prompt},
				llm.Message{Role: llm.RoleAssistant, Content: result.Answer},
			)

			conn.WriteJSON(wsChatResponse{
				Answer:            result.Answer,
				MemoryContext:     result.Context,
				ExtractedMemories: len(result.Captured),
			})
		}
	}
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/chat"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/db"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/dialogue"
)

// POST /chats
func CreateChatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req struct {
			Title string `json:"title"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		chatInst := chat.Chat{
			Title:     req.Title,
			UserID:    userID,
			CreatedAt: time.Now(),
		}
		if err := db.DB.Create(&chatInst).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create chat"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":        chatInst.ID,
			"title":     chatInst.Title,
			"createdAt": chatInst.CreatedAt,
		})
	}
}

// GET /chats
func ListChatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var chats []chat.Chat
		if err := db.DB.Where("user_id = ?", userID).Order("updated_at desc").Find(&chats).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list chats"})
			return
		}
		c.JSON(http.StatusOK, chats)
	}
}

// loadOwnedChat fetches a chat by path id and verifies ownership.
func loadOwnedChat(c *gin.Context) (*chat.Chat, bool) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	chatID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return nil, false
	}
	var chatInst chat.Chat
	if err := db.DB.First(&chatInst, chatID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return nil, false
	}
	if chatInst.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your chat"})
		return nil, false
	}
	return &chatInst, true
}

// GET /chats/:id
func GetChatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatInst, ok := loadOwnedChat(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, chatInst)
	}
}

// GET /chats/:id/messages
func ListMessagesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatInst, ok := loadOwnedChat(c)
		if !ok {
			return
		}
		var messages []chat.Message
		if err := db.DB.Where("chat_id = ?", chatInst.ID).Order("created_at asc").Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}

// POST /chats/:id/messages — run one full conversational turn.
func SendMessageHandler(cfg *config.Config, engine *dialogue.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		chatInst, ok := loadOwnedChat(c)
		if !ok {
			return
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
			return
		}

		// History for the completion call, trimmed to the model's context
		var history []chat.Message
		if err := db.DB.Where("chat_id = ?", chatInst.ID).Order("created_at asc").Find(&history).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
			return
		}
		window := chat.BuildSlidingWindow(history, cfg.Chat.Model.ContextSize)

		result, err := engine.RunTurn(c.Request.Context(), int64(chatInst.UserID), chat.ToLLMMessages(window), req.Content)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "completion failed"})
			return
		}

		userMsg := chat.Message{ChatID: chatInst.ID, Sender: "user", Content: req.Content, CreatedAt: time.Now()}
		if err := db.DB.Create(&userMsg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
			return
		}

		assistantMsg := chat.Message{ChatID: chatInst.ID, Sender: "assistant", Content: result.Answer, CreatedAt: time.Now()}
		if len(result.Captured) > 0 {
			texts := make([]string, len(result.Captured))
			for i, rec := range result.Captured {
				texts[i] = rec.MemoryText
			}
			if raw, err := json.Marshal(texts); err == nil {
				assistantMsg.ExtractedMemories = raw
			}
		}
		if err := db.DB.Create(&assistantMsg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
			return
		}

		db.DB.Model(chatInst).Update("updated_at", time.Now())

		c.JSON(http.StatusOK, gin.H{
			"answer":             result.Answer,
			"memory_context":     result.Context,
			"extracted_memories": len(result.Captured),
		})
	}
}

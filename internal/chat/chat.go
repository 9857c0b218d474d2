package chat

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/llm"
)

type Chat struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Title     string         `json:"title"`
	UserID    uint           `json:"user_id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	Messages  []Message      `json:"-" gorm:"foreignKey:ChatID"`
}

type Message struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	ChatID  uint   `json:"chat_id"`
	Sender  string `json:"sender"` // "user" or "assistant"
	Content string `json:"content"`
	// Memory texts extracted from the turn this message closed, for
	// transcript inspection. Null for user messages.
	ExtractedMemories datatypes.JSON `json:"extracted_memories,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// Sliding window for context limitation
func BuildSlidingWindow(messages []Message, contextSize int) []Message {
	maxChars := int(float64(contextSize)*0.85) * 4 // Use 85% of context, 4 chars/token
	var window []Message
	totalChars := 0

	// Start from the end (latest message), prepend to window
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		msgLen := len(m.Content)
		if totalChars+msgLen > maxChars {
			break
		}
		window = append([]Message{m}, window...)
		totalChars += msgLen
	}
	return window
}

// ToLLMMessages converts stored messages into role-tagged turns for the
// completion call.
func ToLLMMessages(messages []Message) []llm.Message {
	out := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		role := llm.RoleUser
		if m.Sender == "assistant" {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}

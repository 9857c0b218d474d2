package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/auth"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/dialogue"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/memory"
)

// Deps bundles what the handlers need beyond config.
type Deps struct {
	Redis    *redis.Client
	Engine   *dialogue.Engine
	Pipeline *memory.Pipeline
}

func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/health", healthHandler)
	r.GET("/config", configHandler(cfg))

	// Setup: only if no users exist yet
	r.POST("/setup", SetupHandler())

	// Auth
	r.POST("/auth/login", LoginHandler(cfg, deps.Redis))
	r.POST("/auth/logout", auth.AuthMiddleware(cfg, deps.Redis), LogoutHandler(deps.Redis))
	r.GET("/auth/me", auth.AuthMiddleware(cfg, deps.Redis), MeHandler())

	// Chats
	r.POST("/chats", auth.AuthMiddleware(cfg, deps.Redis), CreateChatHandler())
	r.GET("/chats", auth.AuthMiddleware(cfg, deps.Redis), ListChatsHandler())
	r.GET("/chats/:id", auth.AuthMiddleware(cfg, deps.Redis), GetChatHandler())
	r.GET("/chats/:id/messages", auth.AuthMiddleware(cfg, deps.Redis), ListMessagesHandler())
	r.POST("/chats/:id/messages", auth.AuthMiddleware(cfg, deps.Redis), SendMessageHandler(cfg, deps.Engine))

	// Memories
	r.POST("/memories/search", auth.AuthMiddleware(cfg, deps.Redis), SearchMemoriesHandler(cfg, deps.Pipeline))
	r.GET("/memories/categories", auth.AuthMiddleware(cfg, deps.Redis), ListCategoriesHandler(deps.Pipeline))
	r.DELETE("/memories", auth.AuthMiddleware(cfg, deps.Redis), DeleteMemoriesHandler(deps.Pipeline))

	// WebSocket chat
	r.GET("/ws/chat", WSChatHandler(cfg, deps.Engine))

	return r
}

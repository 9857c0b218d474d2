package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/auth"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/db"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/user"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /setup — create the first user account. Rejected once any user exists.
func SetupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var count int64
		db.DB.Model(&user.User{}).Count(&count)
		if count > 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Setup already completed"}})
			return
		}

		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "username and password required"}})
			return
		}

		hash, err := user.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "failed to hash password"}})
			return
		}

		u := user.User{Username: req.Username, PasswordHash: hash}
		if err := db.DB.Create(&u).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "failed to create user"}})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": u.ID, "username": u.Username})
	}
}

// POST /auth/login
func LoginHandler(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request"}})
			return
		}

		var u user.User
		if err := db.DB.Where("username = ?", req.Username).First(&u).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid username or password"}})
			return
		}
		if err := user.CheckPassword(u.PasswordHash, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid username or password"}})
			return
		}

		token, err := auth.GenerateJWT(cfg.Server.JWTSecret, u.ID, u.Username, auth.SessionDuration)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "failed to generate token"}})
			return
		}
		if err := auth.SetSession(rdb, u.ID, token, auth.SessionDuration); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "failed to create session"}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "username": u.Username})
	}
}

// POST /auth/logout
func LogoutHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "unauthorized"}})
			return
		}
		_ = auth.DeleteSession(rdb, userID)
		c.JSON(http.StatusOK, gin.H{"status": "logged out"})
	}
}

// GET /auth/me
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "unauthorized"}})
			return
		}
		var u user.User
		if err := db.DB.First(&u, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "user not found"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "username": u.Username})
	}
}

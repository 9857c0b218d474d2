package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ModelEndpoint describes one OpenAI-compatible model endpoint.
type ModelEndpoint struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContextSize int    `json:"context_size"`
}

type Config struct {
	Server struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		JWTSecret string `json:"jwtSecret"`
	} `json:"server"`
	Database struct {
		Driver string `json:"driver"` // "sqlite" or "postgres"
		DSN    string `json:"dsn"`
	} `json:"database"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Chat struct {
		Model ModelEndpoint `json:"model"`
	} `json:"chat"`
	Extractor struct {
		Enabled bool          `json:"enabled"`
		Model   ModelEndpoint `json:"model"`
	} `json:"extractor"`
	Embedding struct {
		Model      string `json:"model"`
		URL        string `json:"url"`
		Dimensions int    `json:"dimensions"`
	} `json:"embedding"`
	Qdrant struct {
		URL        string `json:"url"`
		Collection string `json:"collection"`
		APIKey     string `json:"api_key"`
	} `json:"qdrant"`
	Memory struct {
		TopK int `json:"top_k"`
	} `json:"memory"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		// Minimal validation
		if c.Server.JWTSecret == "" {
			cfgErr = errors.New("jwtSecret must be set in config")
			return
		}
		if c.Qdrant.Collection == "" {
			c.Qdrant.Collection = "memories"
		}
		if c.Embedding.Dimensions <= 0 {
			c.Embedding.Dimensions = 64
		}
		if c.Memory.TopK <= 0 {
			c.Memory.TopK = 5
		}
		if c.Chat.Model.ContextSize <= 0 {
			c.Chat.Model.ContextSize = 8192
		}
		cfg = &c
	})
	return cfg, cfgErr
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}

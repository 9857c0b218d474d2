package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/chat"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/user"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite", "":
		dsn := cfg.Database.DSN
		if dsn == "" {
			dsn = "agent.db"
		}
		dialector = sqlite.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&user.User{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&chat.Chat{}, &chat.Message{}); err != nil {
		return err
	}

	DB = db
	log.Printf("Database connected and migrated")
	return nil
}

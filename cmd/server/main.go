package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/api"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/db"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/dialogue"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/llm"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/memory"
	redisdb "github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/redis"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	rdb := redisdb.NewClient(cfg)

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Memory pipeline error: %v\n", err)
		os.Exit(1)
	}

	completer := llm.NewClient(cfg.Chat.Model.URL, cfg.Chat.Model.Name)
	engine := dialogue.NewEngine(completer, pipeline, cfg.Memory.TopK)

	r := api.SetupRouter(cfg, api.Deps{
		Redis:    rdb,
		Engine:   engine,
		Pipeline: pipeline,
	})
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func buildPipeline(cfg *config.Config) (*memory.Pipeline, error) {
	storage, err := memory.NewStorage(
		cfg.Qdrant.URL,
		cfg.Qdrant.Collection,
		cfg.Qdrant.APIKey,
		cfg.Embedding.Dimensions,
	)
	if err != nil {
		return nil, err
	}
	// Unreachable store at startup is a misconfiguration, so this is fatal.
	if err := storage.EnsureCollection(context.Background()); err != nil {
		return nil, err
	}
	log.Printf("[Main] ✓ Memory collection %q ready", cfg.Qdrant.Collection)

	var extractorClient *llm.Client
	if cfg.Extractor.Enabled && cfg.Extractor.Model.URL != "" {
		extractorClient = llm.NewClient(cfg.Extractor.Model.URL, cfg.Extractor.Model.Name)
	}
	extractor := memory.ResolveExtractor(cfg.Extractor.Enabled, extractorClient)

	embedder := memory.NewEmbedder(cfg.Embedding.URL, cfg.Embedding.Model, cfg.Embedding.Dimensions)

	return memory.NewPipeline(memory.NewCategoryRegistry(), extractor, embedder, storage), nil
}

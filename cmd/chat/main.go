// Interactive terminal chat with persistent long-term memory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/dialogue"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/llm"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/memory"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	userID := flag.Int64("user", 1, "user id owning the memories")
	showContext := flag.Bool("show-context", false, "print the recalled memory context before each answer")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	storage, err := memory.NewStorage(cfg.Qdrant.URL, cfg.Qdrant.Collection, cfg.Qdrant.APIKey, cfg.Embedding.Dimensions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Qdrant error: %v\n", err)
		os.Exit(1)
	}
	if err := storage.EnsureCollection(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Collection error: %v\n", err)
		os.Exit(1)
	}

	var extractorClient *llm.Client
	if cfg.Extractor.Enabled && cfg.Extractor.Model.URL != "" {
		extractorClient = llm.NewClient(cfg.Extractor.Model.URL, cfg.Extractor.Model.Name)
	}
	pipeline := memory.NewPipeline(
		memory.NewCategoryRegistry(),
		memory.ResolveExtractor(cfg.Extractor.Enabled, extractorClient),
		memory.NewEmbedder(cfg.Embedding.URL, cfg.Embedding.Model, cfg.Embedding.Dimensions),
		storage,
	)
	engine := dialogue.NewEngine(llm.NewClient(cfg.Chat.Model.URL, cfg.Chat.Model.Name), pipeline, cfg.Memory.TopK)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "User: ",
		HistoryFile:     filepath.Join(os.TempDir(), ".agentic_memory_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	var history []llm.Message
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Println("Goodbye!")
			return
		}

		result, err := engine.RunTurn(context.Background(), *userID, history, input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		if *showContext {
			fmt.Printf("[memories]\n%s\n\n", result.Context)
		}
		fmt.Printf("\nAssistant: %s\n\n", result.Answer)

		history = append(history,
			llm.Message{Role: llm.RoleUser, Content: input},
			llm.Message{Role: llm.RoleAssistant, Content: result.Answer},
		)
	}
}

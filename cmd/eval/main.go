// Evaluation harness: seed memories from a context transcript, then check
// that retrieval-grounded answers contain the expected substrings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/eval"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/llm"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/memory"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	testPath := flag.String("file", "test1.json", "path to the evaluation input file")
	userID := flag.Int64("user", 1, "user id owning the seeded memories")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	tf, err := eval.LoadTestFile(*testPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test file error: %v\n", err)
		os.Exit(1)
	}

	storage, err := memory.NewStorage(cfg.Qdrant.URL, cfg.Qdrant.Collection, cfg.Qdrant.APIKey, cfg.Embedding.Dimensions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Qdrant error: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	if err := storage.EnsureCollection(ctx); err != nil {
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
	harness := eval.NewHarness(llm.NewClient(cfg.Chat.Model.URL, cfg.Chat.Model.Name), pipeline, cfg.Memory.TopK)

	banner("STORING MEMORIES FROM CONTEXT")
	results, err := harness.Run(ctx, *userID, tf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Evaluation error: %v\n", err)
		os.Exit(1)
	}

	banner("RESULTS")
	for i, r := range results {
		status := "✗"
		if r.Passed {
			status = "✓"
		}
		fmt.Printf("\nTest %d: %s\n", i+1, status)
		fmt.Printf("Question: %s\n", r.Question)
		fmt.Printf("Expected: %s\n", r.Expected)
		fmt.Printf("Actual:   %s\n", r.Actual)
	}

	banner("SUMMARY")
	passed, total := eval.Summary(results)
	fmt.Printf("Tests Passed: %d/%d\n", passed, total)
	if passed < total {
		os.Exit(1)
	}
}

func banner(title string) {
	line := strings.Repeat("=", 50)
	fmt.Printf("\n%s\n%s\n%s\n", line, title, line)
}

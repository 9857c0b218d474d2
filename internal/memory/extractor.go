package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/llm"
)

// ExtractionResult is the outcome of one extraction call.
type ExtractionResult struct {
	NoInfo   bool
	Memories []AtomicMemory
}

// Extractor turns a transcript into atomic memories. Implementations must
// be pure functions of their inputs; merging new categories into the
// registry is the caller's job.
type Extractor interface {
	Extract(ctx context.Context, transcript []llm.Message, knownCategories []string) (ExtractionResult, error)
}

// LLMExtractor performs a single structured-generation call per transcript.
type LLMExtractor struct {
	client *llm.Client
}

// NewLLMExtractor creates an extractor backed by a completion client.
func NewLLMExtractor(client *llm.Client) *LLMExtractor {
	return &LLMExtractor{client: client}
}

// extractedUnit is the wire shape the extraction model is asked to emit.
type extractedUnit struct {
	Information         string   `json:"information"`
	PredictedCategories []string `json:"predicted_categories"`
	Sentiment           string   `json:"sentiment"`
}

type extractionResponse struct {
	NoInfo   bool            `json:"no_info"`
	Memories []extractedUnit `json:"memories"`
}

// Extract decomposes the transcript into the smallest self-contained facts,
// each tagged with one or more categories and a sentiment. The known
// category list is passed so the model prefers reusing labels over
// inventing new ones.
func (e *LLMExtractor) Extract(ctx context.Context, transcript []llm.Message, knownCategories []string) (ExtractionResult, error) {
	raw, err := json.Marshal(transcript)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("failed to serialize transcript: %w", err)
	}

	prompt := fmt.Sprintf(`Extract durable facts from this conversation to store as long-term memory.

Conversation transcript:
%s

Known categories so far: [%s]

Rules:
- Decompose into the smallest self-contained factual units, one fact per unit.
- Do not paraphrase several facts into one compound sentence.
- Assign each unit one or more categories. Prefer reusing a known category over inventing a new one.
- Assign each unit a sentiment: "happy", "sad", or "neutral".
- If the conversation contains nothing worth remembering, set no_info to true and leave memories empty.

Respond with JSON only (no markdown, no explanation):
{
  "no_info": false,
  "memories": [
    {"information": "a single fact", "predicted_categories": ["category"], "sentiment": "neutral"}
  ]
}`, string(raw), strings.Join(knownCategories, ", "))

	messages := []llm.Message{
		{
			Role:    llm.RoleSystem,
			Content: "You are a memory extraction system. Respond only with valid JSON.",
		},
		{
			Role:    llm.RoleUser,
			Content: prompt,
		},
	}

	content, err := e.client.Complete(ctx, messages)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("extraction call failed: %w", err)
	}

	var resp extractionResponse
	if err := json.Unmarshal([]byte(llm.StripFences(content)), &resp); err != nil {
		return ExtractionResult{}, fmt.Errorf("failed to parse extraction JSON: %w (content: %s)", err, content)
	}

	if resp.NoInfo {
		return ExtractionResult{NoInfo: true}, nil
	}

	memories := make([]AtomicMemory, 0, len(resp.Memories))
	for _, unit := range resp.Memories {
		text := strings.TrimSpace(unit.Information)
		if text == "" {
			continue
		}
		categories := unit.PredictedCategories
		if len(categories) == 0 {
			categories = []string{"general"}
		}
		memories = append(memories, AtomicMemory{
			Text:       text,
			Categories: categories,
			Sentiment:  NormalizeSentiment(unit.Sentiment),
		})
	}

	// no_info=false with an empty list is treated as nothing extracted
	if len(memories) == 0 {
		return ExtractionResult{NoInfo: true}, nil
	}

	return ExtractionResult{Memories: memories}, nil
}

// NoopExtractor is the degraded-mode variant used when structured
// generation is not configured. It always reports nothing to extract.
type NoopExtractor struct{}

func (NoopExtractor) Extract(ctx context.Context, transcript []llm.Message, knownCategories []string) (ExtractionResult, error) {
	return ExtractionResult{NoInfo: true}, nil
}

// ResolveExtractor picks the extractor variant once at startup.
func ResolveExtractor(enabled bool, client *llm.Client) Extractor {
	if !enabled || client == nil {
		log.Printf("[Extractor] Structured generation unavailable, memory extraction disabled")
		return NoopExtractor{}
	}
	return NewLLMExtractor(client)
}

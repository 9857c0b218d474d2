package memory

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/llm"
)

// VectorStore is the slice of the storage gateway the pipeline needs.
type VectorStore interface {
	Insert(ctx context.Context, records []Record) ([]string, error)
	Search(ctx context.Context, queryVector []float32, userID int64, categories []string, topK int) ([]Retrieved, error)
	Delete(ctx context.Context, pointIDs []string) error
}

// Pipeline wires the extraction and retrieval flow together: extractor,
// registry, embedder, and storage. It owns the registry merge after each
// extraction call.
type Pipeline struct {
	Registry  *CategoryRegistry
	Extractor Extractor
	Embedder  *Embedder
	Storage   VectorStore
}

// NewPipeline creates a pipeline over the given components.
func NewPipeline(registry *CategoryRegistry, extractor Extractor, embedder *Embedder, storage VectorStore) *Pipeline {
	return &Pipeline{
		Registry:  registry,
		Extractor: extractor,
		Embedder:  embedder,
		Storage:   storage,
	}
}

// CaptureTurn extracts durable facts from the transcript, embeds them in a
// single batch, and stores the resulting records. Returns the stored
// records and their point ids. A transcript with nothing to remember
// returns empty slices, not an error.
func (p *Pipeline) CaptureTurn(ctx context.Context, userID int64, transcript []llm.Message) ([]Record, []string, error) {
	result, err := p.Extractor.Extract(ctx, transcript, p.Registry.Labels())
	if err != nil {
		return nil, nil, fmt.Errorf("extraction failed: %w", err)
	}

	// Merge newly predicted categories before anything else can fail, so
	// the registry stays monotonically non-decreasing across cycles.
	for _, mem := range result.Memories {
		p.Registry.Add(mem.Categories...)
	}

	if result.NoInfo || len(result.Memories) == 0 {
		return nil, nil, nil
	}

	texts := make([]string, len(result.Memories))
	for i, mem := range result.Memories {
		texts[i] = mem.Text
	}

	// One batch call per extraction cycle, then positional zip.
	embeddings, err := p.Embedder.Embed(ctx, texts)
	if err != nil {
		return nil, nil, fmt.Errorf("embedding failed: %w", err)
	}

	records, err := AssembleRecords(userID, result.Memories, embeddings, time.Now())
	if err != nil {
		return nil, nil, err
	}

	ids, err := p.Storage.Insert(ctx, records)
	if err != nil {
		return nil, nil, fmt.Errorf("storage insert failed: %w", err)
	}

	log.Printf("[Pipeline] Stored %d memories for user %d (%d known categories)",
		len(records), userID, p.Registry.Len())
	return records, ids, nil
}

// Recall embeds the query and searches the store for the user's most
// relevant memories, optionally restricted by category.
func (p *Pipeline) Recall(ctx context.Context, userID int64, query string, categories []string, topK int) ([]Retrieved, error) {
	vectors, err := p.Embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}
	return p.Storage.Search(ctx, vectors[0], userID, categories, topK)
}

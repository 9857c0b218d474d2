package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Embedder generates fixed-dimensionality vector embeddings from text
// batches via an OpenAI-compatible embeddings endpoint.
type Embedder struct {
	apiURL     string
	model      string
	dimensions int
	client     *http.Client
}

// NewEmbedder creates a new embedder client.
func NewEmbedder(apiURL, model string, dimensions int) *Embedder {
	return &Embedder{
		apiURL:     apiURL,
		model:      model,
		dimensions: dimensions,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Embed converts a batch of texts to vectors, preserving input order.
// An empty batch returns an empty result without a remote call.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	reqBody := map[string]interface{}{
		"input":      texts,
		"model":      e.model,
		"dimensions": e.dimensions,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embeddings API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Data))
	}

	embeddings := make([][]float32, len(result.Data))
	for i, item := range result.Data {
		if len(item.Embedding) != e.dimensions {
			return nil, fmt.Errorf("embedding %d has %d dimensions, expected %d", i, len(item.Embedding), e.dimensions)
		}
		embeddings[i] = item.Embedding
	}

	return embeddings, nil
}

package memory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func fakeEmbeddings(t *testing.T, dimensions int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad embeddings request: %v", err)
		}
		type item struct {
			Embedding []float32 `json:"embedding"`
		}
		data := make([]item, len(req.Input))
		for i := range req.Input {
			vec := make([]float32, dimensions)
			vec[0] = float32(i + 1) // distinguishable per position
			data[i] = item{Embedding: vec}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))
}

func TestEmbed_BatchOrderAndDimensions(t *testing.T) {
	srv := fakeEmbeddings(t, 64)
	defer srv.Close()

	e := NewEmbedder(srv.URL, "test-embed", 64)
	out, err := e.Embed(context.Background(), []string{"first", "second", "third"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(out))
	}
	for i, vec := range out {
		if len(vec) != 64 {
			t.Errorf("vector %d has %d dimensions, want 64", i, len(vec))
		}
		if vec[0] != float32(i+1) {
			t.Errorf("vector %d out of input order", i)
		}
	}
}

func TestEmbed_EmptyBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("empty batch must not reach the remote service")
	}))
	defer srv.Close()

	e := NewEmbedder(srv.URL, "test-embed", 64)
	out, err := e.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed on empty batch failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %d vectors", len(out))
	}
}

func TestEmbed_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{{"embedding": []float32{0.1}}},
		})
	}))
	defer srv.Close()

	e := NewEmbedder(srv.URL, "test-embed", 1)
	if _, err := e.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Errorf("expected error when the service returns fewer vectors than texts")
	}
}

func TestEmbed_WrongDimensionality(t *testing.T) {
	srv := fakeEmbeddings(t, 8)
	defer srv.Close()

	e := NewEmbedder(srv.URL, "test-embed", 64)
	if _, err := e.Embed(context.Background(), []string{"a"}); err == nil {
		t.Errorf("expected error for wrong vector dimensionality")
	}
}

func TestEmbed_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e := NewEmbedder(srv.URL, "test-embed", 64)
	if _, err := e.Embed(context.Background(), []string{"a"}); err == nil {
		t.Errorf("expected error for non-200 status")
	}
}

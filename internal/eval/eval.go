// Package eval runs retrieval-grounded question answering against a seed
// transcript and scores the answers by expected-substring match.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/llm"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/memory"
)

// TestCase is one question with the substring its answer must contain.
type TestCase struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// TestFile is the persisted evaluation input: a seed transcript plus the
// questions to ask once its memories are stored.
type TestFile struct {
	Context []llm.Message `json:"context"`
	Tests   []TestCase    `json:"test"`
}

// Result records one scored question.
type Result struct {
	Question string `json:"question"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Passed   bool   `json:"passed"`
}

// LoadTestFile reads and parses an evaluation input file.
func LoadTestFile(path string) (*TestFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test file: %w", err)
	}
	var tf TestFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return nil, fmt.Errorf("invalid test file format: %w", err)
	}
	return &tf, nil
}

// Completer produces an assistant reply for a message list.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// MemoryStore is the slice of the memory pipeline the harness needs.
type MemoryStore interface {
	Recall(ctx context.Context, userID int64, query string, categories []string, topK int) ([]memory.Retrieved, error)
	CaptureTurn(ctx context.Context, userID int64, transcript []llm.Message) ([]memory.Record, []string, error)
}

// Harness seeds memories from a context transcript and answers test
// questions grounded on retrieval.
type Harness struct {
	LLM    Completer
	Memory MemoryStore
	TopK   int
}

// NewHarness creates an evaluation harness.
func NewHarness(completer Completer, store MemoryStore, topK int) *Harness {
	return &Harness{LLM: completer, Memory: store, TopK: topK}
}

// SeedContext extracts and stores memories from the full seed transcript.
func (h *Harness) SeedContext(ctx context.Context, userID int64, transcript []llm.Message) ([]memory.Record, error) {
	records, _, err := h.Memory.CaptureTurn(ctx, userID, transcript)
	if err != nil {
		return nil, fmt.Errorf("failed to seed context: %w", err)
	}
	for _, rec := range records {
		log.Printf("[Eval] Stored: %s (%v)", rec.MemoryText, rec.Categories)
	}
	return records, nil
}

// AnswerQuestion retrieves the user's relevant memories and answers the
// question grounded on them.
func (h *Harness) AnswerQuestion(ctx context.Context, userID int64, question string) (string, error) {
	retrieved, err := h.Memory.Recall(ctx, userID, question, nil, h.TopK)
	if err != nil {
		return "", fmt.Errorf("recall failed: %w", err)
	}
	contextBlock := memory.FormatRetrieved(retrieved)

	messages := []llm.Message{
		{
			Role: llm.RoleSystem,
			Content: fmt.Sprintf(`You are a helpful assistant. Use the following memories if relevant:
%s

Answer the user's question based on the memories above and general knowledge.`, contextBlock),
		},
		{Role: llm.RoleUser, Content: question},
	}

	return h.LLM.Complete(ctx, messages)
}

// Run seeds the context then scores every test case. A question whose
// answering fails is recorded as a failed case, not a harness error.
func (h *Harness) Run(ctx context.Context, userID int64, tf *TestFile) ([]Result, error) {
	if _, err := h.SeedContext(ctx, userID, tf.Context); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(tf.Tests))
	for i, tc := range tf.Tests {
		actual, err := h.AnswerQuestion(ctx, userID, tc.Question)
		if err != nil {
			log.Printf("[Eval] WARNING: test %d failed to answer: %v", i+1, err)
			actual = ""
		}
		results = append(results, Result{
			Question: tc.Question,
			Expected: tc.Answer,
			Actual:   actual,
			Passed:   Passed(tc.Answer, actual),
		})
	}
	return results, nil
}

// Passed checks whether the actual answer contains the expected substring,
// case-insensitively.
func Passed(expected, actual string) bool {
	return strings.Contains(strings.ToLower(actual), strings.ToLower(expected))
}

// Summary counts passed results.
func Summary(results []Result) (passed, total int) {
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	return passed, len(results)
}

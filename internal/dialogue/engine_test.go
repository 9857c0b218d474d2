package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/llm"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/memory"
)

type stubCompleter struct {
	reply    string
	err      error
	lastSeen []llm.Message
}

func (s *stubCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	s.lastSeen = messages
	return s.reply, s.err
}

type stubMemory struct {
	recalled   []memory.Retrieved
	recallErr  error
	captured   []memory.Record
	captureErr error
	capturedIn []llm.Message
}

func (s *stubMemory) Recall(ctx context.Context, userID int64, query string, categories []string, topK int) ([]memory.Retrieved, error) {
	return s.recalled, s.recallErr
}

func (s *stubMemory) CaptureTurn(ctx context.Context, userID int64, transcript []llm.Message) ([]memory.Record, []string, error) {
	s.capturedIn = transcript
	return s.captured, nil, s.captureErr
}

func TestRunTurn_InjectsMemoryContext(t *testing.T) {
	completer := &stubCompleter{reply: "Your favorite color is blue."}
	store := &stubMemory{
		recalled: []memory.Retrieved{{MemoryText: "User's favorite color is blue", Score: 0.9}},
	}
	e := NewEngine(completer, store, 5)

	result, err := e.RunTurn(context.Background(), 7, nil, "What is my favorite color?")
	if err != nil {
		t.Fatalf("RunTurn failed: %v", err)
	}
	if result.Answer != "Your favorite color is blue." {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
	if !strings.Contains(result.Context, "blue") {
		t.Errorf("formatted context missing retrieved memory: %q", result.Context)
	}

	// System prompt must carry the memory context
	if len(completer.lastSeen) == 0 || completer.lastSeen[0].Role != llm.RoleSystem {
		t.Fatalf("first message must be the system prompt")
	}
	if !strings.Contains(completer.lastSeen[0].Content, "blue") {
		t.Errorf("system prompt does not contain recalled memory")
	}
}

func TestRunTurn_RecallFailureDegrades(t *testing.T) {
	completer := &stubCompleter{reply: "ok"}
	store := &stubMemory{recallErr: errors.New("store unavailable")}
	e := NewEngine(completer, store, 5)

	result, err := e.RunTurn(context.Background(), 1, nil, "hello")
	if err != nil {
		t.Fatalf("recall failure must not fail the turn: %v", err)
	}
	if result.Context != memory.NoMemoriesSentinel {
		t.Errorf("expected sentinel context, got %q", result.Context)
	}
}

func TestRunTurn_CaptureFailureDegrades(t *testing.T) {
	completer := &stubCompleter{reply: "ok"}
	store := &stubMemory{captureErr: errors.New("embedding quota exceeded")}
	e := NewEngine(completer, store, 5)

	result, err := e.RunTurn(context.Background(), 1, nil, "I like sailing")
	if err != nil {
		t.Fatalf("capture failure must not fail the turn: %v", err)
	}
	if result.Answer != "ok" {
		t.Errorf("reply must survive capture failure")
	}
	if len(result.Captured) != 0 {
		t.Errorf("no memories should be reported captured on failure")
	}
}

func TestRunTurn_CompletionFailureFailsTurn(t *testing.T) {
	completer := &stubCompleter{err: errors.New("model down")}
	store := &stubMemory{}
	e := NewEngine(completer, store, 5)

	if _, err := e.RunTurn(context.Background(), 1, nil, "hello"); err == nil {
		t.Errorf("completion failure must fail the turn")
	}
	if store.capturedIn != nil {
		t.Errorf("nothing must be captured when the completion fails")
	}
}

func TestRunTurn_CapturesClosedExchange(t *testing.T) {
	completer := &stubCompleter{reply: "noted"}
	store := &stubMemory{}
	e := NewEngine(completer, store, 5)

	if _, err := e.RunTurn(context.Background(), 1, nil, "I moved to Lisbon"); err != nil {
		t.Fatalf("RunTurn failed: %v", err)
	}
	if len(store.capturedIn) != 2 {
		t.Fatalf("expected user+assistant exchange, got %d messages", len(store.capturedIn))
	}
	if store.capturedIn[0].Role != llm.RoleUser || store.capturedIn[1].Role != llm.RoleAssistant {
		t.Errorf("exchange roles wrong: %+v", store.capturedIn)
	}
}

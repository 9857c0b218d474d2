package dialogue

import (
	"context"
	"fmt"
	"log"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/llm"
	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/memory"
)

// Completer produces an assistant reply for a message list.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// MemoryStore is the slice of the memory pipeline the engine needs.
type MemoryStore interface {
	Recall(ctx context.Context, userID int64, query string, categories []string, topK int) ([]memory.Retrieved, error)
	CaptureTurn(ctx context.Context, userID int64, transcript []llm.Message) ([]memory.Record, []string, error)
}

// TurnResult is the outcome of one conversational turn.
type TurnResult struct {
	Answer   string
	Context  string          // formatted memory context injected into the prompt
	Captured []memory.Record // memories stored from this turn
}

// Engine drives one conversational turn: recall relevant memories, answer
// grounded on them, then capture the turn's durable facts. Memory failures
// degrade the turn instead of aborting it.
type Engine struct {
	LLM    Completer
	Memory MemoryStore
	TopK   int
}

// NewEngine creates a turn engine.
func NewEngine(completer Completer, store MemoryStore, topK int) *Engine {
	return &Engine{LLM: completer, Memory: store, TopK: topK}
}

// RunTurn executes the retrieval -> completion -> capture sequence for one
// user input. The calls stay sequential: the current turn's memories must
// not be stored before context for the current question is searched.
func (e *Engine) RunTurn(ctx context.Context, userID int64, history []llm.Message, userInput string) (TurnResult, error) {
	// 1. Recall. Failure here means answering without memory context.
	contextBlock := memory.NoMemoriesSentinel
	retrieved, err := e.Memory.Recall(ctx, userID, userInput, nil, e.TopK)
	if err != nil {
		log.Printf("[Engine] WARNING: memory recall failed, answering without context: %v", err)
	} else {
		contextBlock = memory.FormatRetrieved(retrieved)
	}

	// 2. Complete. This is the only failure that fails the turn.
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt(contextBlock)})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userInput})

	answer, err := e.LLM.Complete(ctx, messages)
	if err != nil {
		return TurnResult{}, fmt.Errorf("completion failed: %w", err)
	}

	// 3. Capture the closed exchange. Losing this turn's memories is an
	// accepted degradation; the reply already exists.
	exchange := []llm.Message{
		{Role: llm.RoleUser, Content: userInput},
		{Role: llm.RoleAssistant, Content: answer},
	}
	captured, _, err := e.Memory.CaptureTurn(ctx, userID, exchange)
	if err != nil {
		log.Printf("[Engine] WARNING: memory capture failed for user %d, turn not remembered: %v", userID, err)
		captured = nil
	}

	return TurnResult{Answer: answer, Context: contextBlock, Captured: captured}, nil
}

func systemPrompt(memoryContext string) string {
	return fmt.Sprintf(`You are a helpful assistant. Answer the user's question honestly.
Here is some relevant information that previous interactions have taught us:
%s

Answer based on the information above and general knowledge.`, memoryContext)
}

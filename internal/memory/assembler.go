package memory

import (
	"fmt"
	"time"
)

// timestampLayout is the human-readable creation time stored in the payload.
const timestampLayout = "2006-01-02 15:04"

// AssembleRecords zips atomic memories with their embeddings into storable
// records. The zip is positional: embeddings must come from one batch call
// over exactly the memory texts, in order. All records from one cycle share
// the same timestamp.
func AssembleRecords(userID int64, memories []AtomicMemory, embeddings [][]float32, now time.Time) ([]Record, error) {
	if len(memories) != len(embeddings) {
		return nil, fmt.Errorf("memory/embedding count mismatch: %d memories, %d embeddings", len(memories), len(embeddings))
	}

	stamp := now.Format(timestampLayout)
	records := make([]Record, len(memories))
	for i, mem := range memories {
		records[i] = Record{
			UserID:     userID,
			MemoryText: mem.Text,
			Categories: mem.Categories,
			Timestamp:  stamp,
			Embedding:  embeddings[i],
		}
	}
	return records, nil
}

package memory

// Sentiment is the coarse emotional tone attached to an extracted memory.
type Sentiment string

const (
	SentimentHappy   Sentiment = "happy"
	SentimentSad     Sentiment = "sad"
	SentimentNeutral Sentiment = "neutral"
)

// NormalizeSentiment maps a raw label from the extraction model onto the
// closed enum. Unknown labels fall back to neutral rather than propagating.
func NormalizeSentiment(raw string) Sentiment {
	switch Sentiment(raw) {
	case SentimentHappy, SentimentSad, SentimentNeutral:
		return Sentiment(raw)
	default:
		return SentimentNeutral
	}
}

// AtomicMemory is a single self-contained fact extracted from dialogue.
// Immutable once created; new facts become new records.
type AtomicMemory struct {
	Text       string    `json:"text"`
	Categories []string  `json:"categories"`
	Sentiment  Sentiment `json:"sentiment"`
}

// Record is a storable memory: an atomic fact bound to its owner, a
// creation timestamp, and its embedding vector.
type Record struct {
	UserID     int64     `json:"user_id"`
	MemoryText string    `json:"memory_text"`
	Categories []string  `json:"categories"`
	Timestamp  string    `json:"timestamp"`
	Embedding  []float32 `json:"-"`
}

// Retrieved is a read-only projection of a stored record plus its
// relevance score, produced only by search.
type Retrieved struct {
	PointID    string   `json:"point_id"`
	UserID     int64    `json:"user_id"`
	MemoryText string   `json:"memory_text"`
	Categories []string `json:"categories"`
	Timestamp  string   `json:"timestamp"`
	Score      float64  `json:"score"`
}

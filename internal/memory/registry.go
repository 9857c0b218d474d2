package memory

import "sync"

// CategoryRegistry is the process-wide set of category labels seen so far.
// Labels are only ever added, never removed or renamed, so the set is
// monotonically non-decreasing for the lifetime of the process. Safe for
// concurrent sessions.
type CategoryRegistry struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	labels []string // insertion order
}

// NewCategoryRegistry creates an empty registry, optionally pre-seeded.
func NewCategoryRegistry(initial ...string) *CategoryRegistry {
	r := &CategoryRegistry{seen: make(map[string]struct{})}
	r.Add(initial...)
	return r
}

// Add appends any labels not seen before. Duplicates and empty strings
// are ignored.
func (r *CategoryRegistry) Add(labels ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, label := range labels {
		if label == "" {
			continue
		}
		if _, ok := r.seen[label]; ok {
			continue
		}
		r.seen[label] = struct{}{}
		r.labels = append(r.labels, label)
	}
}

// Labels returns a copy of all known labels in insertion order.
func (r *CategoryRegistry) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}

// Len returns the number of known labels.
func (r *CategoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.labels)
}

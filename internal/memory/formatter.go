package memory

import "strings"

// NoMemoriesSentinel is returned when search produced nothing usable.
const NoMemoriesSentinel = "no relevant memories found"

// FormatRetrieved renders retrieved memories as a context block, one memory
// text per line, in the ranked order delivered by search. Ordering fidelity
// matters for downstream prompt construction: no reordering, no dedup.
func FormatRetrieved(retrieved []Retrieved) string {
	if len(retrieved) == 0 {
		return NoMemoriesSentinel
	}
	lines := make([]string, len(retrieved))
	for i, mem := range retrieved {
		lines[i] = mem.MemoryText
	}
	return strings.Join(lines, "\n")
}

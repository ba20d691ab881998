package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates session ids "<prefix>-1", "<prefix>-2", ...
//
// Unlike trace.FixedGenerator it never runs out, so scenario steps and the
// replays of their sessions can share one generator.
//
// Thread-safety: SequentialIDs is safe for concurrent use via internal mutex.
type SequentialIDs struct {
	prefix string

	mu sync.Mutex
	n  int
}

// NewSequentialIDs creates a generator. An empty prefix uses "session".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "session"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next id.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

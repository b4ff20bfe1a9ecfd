package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out opaque identifiers that are unique for the whole tree.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator produces random (v4) UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator produces prefix-1, prefix-2, ... and is meant for tests and
// fixtures where stable ids make assertions readable.
type SequenceGenerator struct {
	Prefix string

	mu   sync.Mutex
	next int
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, g.next)
}

// LooksLikeID reports whether s parses as a UUID (the format UUIDGenerator emits).
func LooksLikeID(s string) bool {
	return uuid.Validate(s) == nil
}

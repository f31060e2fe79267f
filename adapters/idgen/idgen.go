// Package idgen provides quote ID generation implementations.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/artpar/gymprice/ports"
	"github.com/google/uuid"
)

// QuotePrefix prefixes generated quote IDs.
const QuotePrefix = "q_"

// UUID generates prefixed UUIDs.
type UUID struct {
	Prefix string
}

// New generates a new prefixed UUID v4.
func (g UUID) New() string {
	return g.Prefix + uuid.NewString()
}

// Sequential generates sequential IDs (for testing).
type Sequential struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequential creates a sequential ID generator.
func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

// New generates the next sequential ID.
func (s *Sequential) New() string {
	return s.prefix + strconv.FormatUint(s.counter.Add(1), 10)
}

// Ensure interface compliance.
var (
	_ ports.IDGenerator = UUID{}
	_ ports.IDGenerator = (*Sequential)(nil)
)

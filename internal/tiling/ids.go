package tiling

import "sync/atomic"

// IDGenerator issues brick ids. Ids start at 1 so that 0 can mark an empty
// grid cell. A generator is safe for concurrent use; every collection copied
// from the same source shares one, which keeps ids unique within that family.
type IDGenerator struct {
	last atomic.Int64
}

// NewIDGenerator returns a generator whose first id is 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns a fresh id.
func (g *IDGenerator) Next() int {
	return int(g.last.Add(1))
}

// Last returns the most recently issued id, or 0 if none was issued.
func (g *IDGenerator) Last() int {
	return int(g.last.Load())
}

// Package report turns the generation callback of the genetic driver into
// statistics and exportable run results.
package report

import (
	"github.com/piwi3910/BrickFill/internal/engine"
	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

// Collector records per-generation statistics and the best layout seen.
type Collector struct {
	stats   []model.GenerationStats
	best    *tiling.Layout
	bestGen int
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{bestGen: -1}
}

// Observe records one generation. It has the engine.ResultFunc signature.
func (c *Collector) Observe(generation int, pop engine.Population) {
	c.stats = append(c.stats, model.ComputeStats(generation, pop.Covered()))
	if b := pop.Best(); b != nil && (c.best == nil || b.CoveredArea() > c.best.CoveredArea()) {
		c.best = b
		c.bestGen = generation
	}
}

// Chain returns a callback that records the generation and then calls each
// of next in order.
func (c *Collector) Chain(next ...engine.ResultFunc) engine.ResultFunc {
	return func(generation int, pop engine.Population) {
		c.Observe(generation, pop)
		for _, fn := range next {
			if fn != nil {
				fn(generation, pop)
			}
		}
	}
}

// Stats returns a copy of the recorded statistics in generation order.
func (c *Collector) Stats() []model.GenerationStats {
	out := make([]model.GenerationStats, len(c.stats))
	copy(out, c.stats)
	return out
}

// Last returns the most recent generation's statistics.
func (c *Collector) Last() (model.GenerationStats, bool) {
	if len(c.stats) == 0 {
		return model.GenerationStats{}, false
	}
	return c.stats[len(c.stats)-1], true
}

// Best returns the best layout observed so far and the generation that
// first produced it. The generation is -1 before anything was observed.
func (c *Collector) Best() (*tiling.Layout, int) {
	return c.best, c.bestGen
}

// Len returns the number of generations observed.
func (c *Collector) Len() int {
	return len(c.stats)
}

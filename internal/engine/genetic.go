package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

// Population is an ordered set of layouts, best first once sorted.
type Population []*tiling.Layout

// Sort orders the population by covered area, highest first.
func (p Population) Sort() {
	sort.SliceStable(p, func(i, j int) bool {
		return p[i].CoveredArea() > p[j].CoveredArea()
	})
}

// Best returns the layout with the largest covered area, or nil.
func (p Population) Best() *tiling.Layout {
	var best *tiling.Layout
	for _, l := range p {
		if best == nil || l.CoveredArea() > best.CoveredArea() {
			best = l
		}
	}
	return best
}

// Covered returns each member's covered area in population order.
func (p Population) Covered() []int {
	out := make([]int, len(p))
	for i, l := range p {
		out[i] = l.CoveredArea()
	}
	return out
}

// Contains reports whether any member has the same coverage as l.
func (p Population) Contains(l *tiling.Layout) bool {
	for _, m := range p {
		if m.HasSameCoverage(l) {
			return true
		}
	}
	return false
}

func (p Population) hasFull() bool {
	for _, l := range p {
		if l.IsFull() {
			return true
		}
	}
	return false
}

// State is the driver's lifecycle stage.
type State int

const (
	StateCreated State = iota
	StateSeeded
	StateEvolving
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateSeeded:
		return "seeded"
	case StateEvolving:
		return "evolving"
	case StateTerminated:
		return "terminated"
	default:
		return "created"
	}
}

// ResultFunc receives each generation once it is final. The population slice
// is built fresh for every generation and its layouts are never edited
// afterwards, so the callee may keep it.
type ResultFunc func(generation int, pop Population)

// Genetic evolves a population of layouts towards full coverage.
type Genetic struct {
	width     int
	height    int
	inventory *tiling.Collection
	config    GeneticConfig
	rng       *rand.Rand
	logger    *log.Logger

	state          State
	population     Population
	seedDuplicates int
	generations    int
}

// New validates the problem and returns a driver in the created state. An
// odd population size is rounded up to the next even number.
func New(width, height int, inventory *tiling.Collection, config GeneticConfig) (*Genetic, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface must be at least 1x1, got %dx%d", model.ErrInvalidArgument, width, height)
	}
	if inventory == nil {
		return nil, fmt.Errorf("%w: genetic driver needs a brick inventory", model.ErrInvalidArgument)
	}
	if inventory.IDs() == nil {
		return nil, fmt.Errorf("%w: brick inventory was not built with NewCollection", model.ErrNotInitialized)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.PopulationSize = evenPopulation(config.PopulationSize)
	if config.MaxSeedAttempts == 0 {
		config.MaxSeedAttempts = config.PopulationSize * 20
	}
	if config.Mutations == nil {
		config.Mutations = AllMutations()
	}

	return &Genetic{
		width:     width,
		height:    height,
		inventory: inventory,
		config:    config,
		rng:       rand.New(rand.NewSource(config.Seed)),
		logger:    log.New(io.Discard),
	}, nil
}

// SetLogger routes debug output to logger. A nil logger discards it.
func (g *Genetic) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g.logger = logger
}

// State returns the lifecycle stage.
func (g *Genetic) State() State { return g.state }

// Config returns the effective configuration after rounding and defaults.
func (g *Genetic) Config() GeneticConfig { return g.config }

// Width returns the number of grid columns.
func (g *Genetic) Width() int { return g.width }

// Height returns the number of grid rows.
func (g *Genetic) Height() int { return g.height }

// SeedDuplicates returns how many seed layouts repeat another one.
func (g *Genetic) SeedDuplicates() int { return g.seedDuplicates }

// GenerationsRun returns the number of generations evolved after seeding.
func (g *Genetic) GenerationsRun() int { return g.generations }

// Population returns a copy of the current population slice.
func (g *Genetic) Population() Population {
	out := make(Population, len(g.population))
	copy(out, g.population)
	return out
}

// Best returns the best layout of the current population, or nil before
// seeding.
func (g *Genetic) Best() *tiling.Layout {
	return g.population.Best()
}

// Seed builds the initial population from copies of the inventory, keeping
// only layouts with distinct coverage. When MaxSeedAttempts builds are not
// enough the rest is filled with duplicates, counted by SeedDuplicates.
func (g *Genetic) Seed() error {
	if g.state != StateCreated {
		return nil
	}

	size := g.config.PopulationSize
	pop := make(Population, 0, size)
	var last *tiling.Layout
	for attempts := 0; len(pop) < size && attempts < g.config.MaxSeedAttempts; attempts++ {
		l, err := tiling.NewLayout(g.width, g.height, g.inventory)
		if err != nil {
			return err
		}
		last = l
		if !pop.Contains(l) {
			pop = append(pop, l)
		}
	}

	for len(pop) < size {
		l := last
		if len(pop) > 0 {
			l = pop[g.rng.Intn(len(pop))]
		}
		pop = append(pop, l.Copy())
		g.seedDuplicates++
	}
	if g.seedDuplicates > 0 {
		g.logger.Debug("seed population padded with duplicates", "distinct", size-g.seedDuplicates, "duplicates", g.seedDuplicates)
	}

	pop.Sort()
	g.population = pop
	g.state = StateSeeded
	return nil
}

// Evolve runs up to generations rounds of selection, crossover and mutation.
// onResult, when set, is called with generation 0 for the seeded population
// and then once per generation. Evolution stops early as soon as a layout
// covers the whole surface, and ctx is checked between generations. A driver
// evolves once; later calls return ErrTerminated.
func (g *Genetic) Evolve(ctx context.Context, generations int, onResult ResultFunc) (Population, error) {
	if g.state == StateTerminated {
		return nil, model.ErrTerminated
	}
	if generations < 0 {
		return nil, fmt.Errorf("%w: generations must not be negative, got %d", model.ErrInvalidArgument, generations)
	}
	if err := g.Seed(); err != nil {
		return nil, err
	}
	g.state = StateEvolving
	defer func() { g.state = StateTerminated }()

	report := func(gen int) {
		if onResult != nil {
			onResult(gen, g.Population())
		}
	}

	report(0)
	if g.population.hasFull() {
		return g.Population(), nil
	}

	for gen := 1; gen <= generations; gen++ {
		if err := ctx.Err(); err != nil {
			return g.Population(), err
		}
		next, err := g.step()
		if err != nil {
			return g.Population(), err
		}
		g.population = next
		g.generations = gen
		report(gen)
		if next.hasFull() {
			g.logger.Debug("full coverage reached", "generation", gen)
			break
		}
	}
	return g.Population(), nil
}

// step builds the next generation.
func (g *Genetic) step() (Population, error) {
	size := g.config.PopulationSize
	next := make(Population, 0, size)
	elites := min(g.config.EliteCount, len(g.population), size)
	next = append(next, g.population[:elites]...)

	for len(next) < size {
		want := min(2, size-len(next))
		for retry := 0; ; retry++ {
			p1, p2 := selectParents(g.population, g.rng)
			c1, c2, err := g.breed(p1, p2)
			if err != nil {
				return nil, err
			}

			candidates := Population{p1, p2, c1, c2}
			candidates.Sort()
			for _, c := range candidates {
				if want == 0 {
					break
				}
				if !next.Contains(c) {
					next = append(next, c)
					want--
				}
			}
			if want == 0 {
				break
			}
			if retry >= g.config.MaxSelectionRetries {
				// Out of retries: keep the better child even if it repeats.
				best := c1
				if c2.CoveredArea() > c1.CoveredArea() {
					best = c2
				}
				next = append(next, best)
				g.logger.Debug("selection accepted a duplicate child", "retries", retry)
				break
			}
		}
	}

	next.Sort()
	return next, nil
}

// breed produces two mutated children. When no crossover window works the
// children start as plain copies of the parents.
func (g *Genetic) breed(p1, p2 *tiling.Layout) (*tiling.Layout, *tiling.Layout, error) {
	c1, c2, err := Crossover(p1, p2, g.config.Crossover, g.rng)
	if errors.Is(err, model.ErrCrossoverExhausted) {
		g.logger.Debug("crossover exhausted, copying parents", "attempts", g.config.Crossover.MaxAttempts)
		c1, c2 = p1.Copy(), p2.Copy()
	} else if err != nil {
		return nil, nil, err
	}

	for _, c := range []*tiling.Layout{c1, c2} {
		if _, _, err := Mutate(c, g.config.MutationThreshold, g.config.Mutations, g.rng); err != nil {
			return nil, nil, err
		}
	}
	return c1, c2, nil
}

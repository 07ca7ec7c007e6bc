package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/BrickFill/internal/model"
)

// CrossoverConfig bounds the search for a cross window.
type CrossoverConfig struct {
	MaxAttempts int // windows tried before giving up
	MinSide     int // shortest window side
	MaxSide     int // longest window side; 0 means ceil(sqrt(shorter grid side))
}

// DefaultCrossoverConfig returns 100 attempts with sides from 2 up to the
// square-root cap.
func DefaultCrossoverConfig() CrossoverConfig {
	return CrossoverConfig{
		MaxAttempts: 100,
		MinSide:     2,
	}
}

// Validate checks the window bounds.
func (c CrossoverConfig) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: crossover needs at least one attempt, got %d", model.ErrInvalidArgument, c.MaxAttempts)
	}
	if c.MinSide < 1 {
		return fmt.Errorf("%w: crossover window side must be positive, got %d", model.ErrInvalidArgument, c.MinSide)
	}
	if c.MaxSide != 0 && c.MaxSide < c.MinSide {
		return fmt.Errorf("%w: crossover max side %d is below min side %d", model.ErrInvalidArgument, c.MaxSide, c.MinSide)
	}
	return nil
}

// sideCap returns the longest window side for a grid whose shorter side is
// minDim. It is never below MinSide.
func (c CrossoverConfig) sideCap(minDim int) int {
	if c.MaxSide > 0 {
		return c.MaxSide
	}
	limit := int(math.Ceil(math.Sqrt(float64(minDim))))
	return max(limit, c.MinSide)
}

// GeneticConfig holds parameters for the genetic algorithm.
type GeneticConfig struct {
	PopulationSize      int
	Generations         int
	MutationThreshold   float64
	EliteCount          int
	Mutations           []MutationKind
	Crossover           CrossoverConfig
	MaxSeedAttempts     int // layouts built while seeding; 0 means 20 per individual
	MaxSelectionRetries int // parent draws per slot before a duplicate child is accepted
	Seed                int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize:      100,
		Generations:         100,
		MutationThreshold:   0.2,
		EliteCount:          2,
		Mutations:           AllMutations(),
		Crossover:           DefaultCrossoverConfig(),
		MaxSelectionRetries: 50,
		Seed:                42,
	}
}

// Validate checks the parameters the driver cannot run without.
func (c GeneticConfig) Validate() error {
	if c.PopulationSize < 1 {
		return fmt.Errorf("%w: population size must be positive, got %d", model.ErrInvalidArgument, c.PopulationSize)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations must not be negative, got %d", model.ErrInvalidArgument, c.Generations)
	}
	if math.IsNaN(c.MutationThreshold) || c.MutationThreshold < 0 || c.MutationThreshold > 1 {
		return fmt.Errorf("%w: mutation threshold must be in [0, 1], got %g", model.ErrInvalidArgument, c.MutationThreshold)
	}
	if c.EliteCount < 0 {
		return fmt.Errorf("%w: elite count must not be negative, got %d", model.ErrInvalidArgument, c.EliteCount)
	}
	if c.MaxSeedAttempts < 0 {
		return fmt.Errorf("%w: seed attempts must not be negative, got %d", model.ErrInvalidArgument, c.MaxSeedAttempts)
	}
	if c.MaxSelectionRetries < 0 {
		return fmt.Errorf("%w: selection retries must not be negative, got %d", model.ErrInvalidArgument, c.MaxSelectionRetries)
	}
	for _, k := range c.Mutations {
		if k < MutationChange || k > MutationMove {
			return fmt.Errorf("%w: unknown mutation kind %d", model.ErrInvalidArgument, int(k))
		}
	}
	return c.Crossover.Validate()
}

// evenPopulation rounds n up to the next even number.
func evenPopulation(n int) int {
	if n%2 == 1 {
		return n + 1
	}
	return n
}

package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

// ComparisonScenario defines a named draw mode and GA configuration to compare.
type ComparisonScenario struct {
	Name   string
	Mode   tiling.Mode
	Config GeneticConfig
}

// ComparisonResult holds the best layout and summary figures for one scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Best           *tiling.Layout
	CoveredArea    int
	Coverage       float64
	GenerationsRun int
	FullCoverage   bool
}

// CompareScenarios runs the GA once per scenario on the same surface and
// shapes, returning results in scenario order.
func CompareScenarios(ctx context.Context, width, height int, shapes []model.Brick, scenarios []ComparisonScenario) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		rng := rand.New(rand.NewSource(scenario.Config.Seed))
		inv, err := tiling.NewCollection(width*height, shapes, scenario.Mode, rng, nil)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		ga, err := New(width, height, inv, scenario.Config)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		pop, err := ga.Evolve(ctx, scenario.Config.Generations, nil)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		best := pop.Best()
		results = append(results, ComparisonResult{
			Scenario:       scenario,
			Best:           best,
			CoveredArea:    best.CoveredArea(),
			Coverage:       model.CoveragePercent(best.CoveredArea(), best.Area()),
			GenerationsRun: ga.GenerationsRun(),
			FullCoverage:   best.IsFull(),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying the draw mode and mutation threshold.
func BuildDefaultScenarios(mode tiling.Mode, base GeneticConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:   "Current Settings",
			Mode:   mode,
			Config: base,
		},
	}

	// Scenario: the other draw mode
	alt := tiling.Weighted
	if mode == tiling.Weighted {
		alt = tiling.Uniform
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:   fmt.Sprintf("%s draw", alt),
		Mode:   alt,
		Config: base,
	})

	// Scenario: mutate twice as often
	if base.MutationThreshold < 1 {
		hot := base
		hot.MutationThreshold = min(1, base.MutationThreshold*2)
		if hot.MutationThreshold == 0 {
			hot.MutationThreshold = 0.2
		}
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Mutation %.2f", hot.MutationThreshold),
			Mode:   mode,
			Config: hot,
		})
	}

	// Scenario: no mutation, crossover only
	if base.MutationThreshold > 0 {
		cold := base
		cold.MutationThreshold = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "No Mutation",
			Mode:   mode,
			Config: cold,
		})
	}

	return scenarios
}

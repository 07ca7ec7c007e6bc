package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := smallConfig(6, 3)
	scenarios := BuildDefaultScenarios(tiling.Uniform, base)

	require.Len(t, scenarios, 4)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, tiling.Weighted, scenarios[1].Mode)
	assert.Equal(t, 0.4, scenarios[2].Config.MutationThreshold)
	assert.Equal(t, 0.0, scenarios[3].Config.MutationThreshold)
}

func TestBuildDefaultScenariosEdges(t *testing.T) {
	base := smallConfig(6, 3)
	base.MutationThreshold = 1
	scenarios := BuildDefaultScenarios(tiling.Weighted, base)
	require.Len(t, scenarios, 3)
	assert.Equal(t, tiling.Uniform, scenarios[1].Mode)
	assert.Equal(t, "No Mutation", scenarios[2].Name)

	base.MutationThreshold = 0
	scenarios = BuildDefaultScenarios(tiling.Uniform, base)
	require.Len(t, scenarios, 3)
	assert.Equal(t, 0.2, scenarios[2].Config.MutationThreshold)
}

func TestCompareScenarios(t *testing.T) {
	shapes := []model.Brick{model.MustBrick(1, 1), model.MustBrick(2, 1)}
	scenarios := BuildDefaultScenarios(tiling.Uniform, smallConfig(6, 3))

	results, err := CompareScenarios(context.Background(), 4, 4, shapes, scenarios)
	require.NoError(t, err)
	require.Len(t, results, len(scenarios))

	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Scenario.Name)
		require.NotNil(t, r.Best)
		assert.Equal(t, r.Best.CoveredArea(), r.CoveredArea)
		assert.Greater(t, r.Coverage, 0.0)
		assert.Equal(t, r.Best.IsFull(), r.FullCoverage)
	}
}

func TestCompareScenariosReportsBadConfig(t *testing.T) {
	cfg := smallConfig(0, 1)
	_, err := CompareScenarios(context.Background(), 4, 4, unitBricks(), []ComparisonScenario{{Name: "broken", Config: cfg}})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

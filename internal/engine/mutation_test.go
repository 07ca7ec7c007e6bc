package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

// emptyGrid returns a layout whose only brick is too big to place.
func emptyGrid(t *testing.T) *tiling.Layout {
	t.Helper()
	l := newLayout(t, 2, 2, 1, []model.Brick{model.MustBrick(3, 3)}, 1)
	require.Equal(t, 0, l.CoveredArea())
	return l
}

func TestRemoveMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := newLayout(t, 3, 3, 9, unitBricks(), 1)

	ok, err := RemoveMutation(l, rng)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 8, l.CoveredArea())
	assert.Equal(t, 1, l.Collection().Available())

	ok, err = RemoveMutation(emptyGrid(t), rng)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := newLayout(t, 3, 3, 9, unitBricks(), 1)

	ok, err := AddMutation(l, rng)
	require.NoError(t, err)
	assert.False(t, ok, "nothing to add on a full grid")

	_, err = RemoveMutation(l, rng)
	require.NoError(t, err)
	ok, err = AddMutation(l, rng)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, l.IsFull())
	assert.Equal(t, 0, l.Collection().Available())
}

func TestAddMutationNeedsStock(t *testing.T) {
	l := newLayout(t, 3, 3, 4, unitBricks(), 1)
	require.Equal(t, 0, l.Collection().Available())

	ok, err := AddMutation(l, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 4, l.CoveredArea())
}

func TestMoveMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	l := newLayout(t, 3, 3, 1, unitBricks(), 1)
	require.Equal(t, 1, l.Cell(0, 0))

	ok, err := MoveMutation(l, rng)
	require.NoError(t, err)
	require.True(t, ok)

	p := l.Placements()[0]
	assert.Equal(t, 1, p.Row+p.Col, "a corner brick can only move right or down")
	assert.Equal(t, 1, l.CoveredArea())
}

func TestMoveMutationRestoresWhenBlocked(t *testing.T) {
	l := newLayout(t, 3, 3, 9, unitBricks(), 1)
	before := l.Copy()

	ok, err := MoveMutation(l, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, l.HasSameCoverage(before))
	assert.Equal(t, before.Grid(), l.Grid())
}

func TestChangeMutation(t *testing.T) {
	l := newLayout(t, 3, 3, 9, unitBricks(), 1)

	ok, err := ChangeMutation(l, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, l.IsFull())
	assert.Equal(t, 0, l.Collection().Available())
}

func TestChangeMutationRestoresOnFailure(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	failures := 0
	for seed := int64(1); seed <= 30; seed++ {
		l := newLayout(t, 5, 5, 100, model.DefaultShapes(), seed)
		for i := 0; i < 10; i++ {
			before := l.Copy()
			ok, err := ChangeMutation(l, rng)
			require.NoError(t, err)
			requireConsistent(t, l)
			if !ok {
				failures++
				assert.Equal(t, before.Grid(), l.Grid(), "a failed change must leave the grid as it was")
				assert.Equal(t, before.Collection().Available(), l.Collection().Available())
			}
		}
	}
	assert.Greater(t, failures, 0)
}

func TestMutationsKeepLayoutConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for seed := int64(1); seed <= 5; seed++ {
		l := newLayout(t, 7, 6, 70, model.DefaultShapes(), seed)
		stock := l.Collection().Available() + len(l.Placements())

		for i := 0; i < 200; i++ {
			kinds := AllMutations()
			fn := mutations[kinds[rng.Intn(len(kinds))]]
			_, err := fn(l, rng)
			require.NoError(t, err)
			requireConsistent(t, l)
			require.Equal(t, stock, l.Collection().Available()+len(l.Placements()), "bricks must be conserved")
		}
	}
}

func TestMutateThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := newLayout(t, 3, 3, 9, unitBricks(), 1)

	kind, applied, err := Mutate(l, 0, AllMutations(), rng)
	require.NoError(t, err)
	assert.Equal(t, MutationNone, kind)
	assert.False(t, applied)

	kind, applied, err = Mutate(l, 1, []MutationKind{MutationRemove}, rng)
	require.NoError(t, err)
	assert.Equal(t, MutationRemove, kind)
	assert.True(t, applied)
	assert.Equal(t, 8, l.CoveredArea())

	kind, _, err = Mutate(l, 1, nil, rng)
	require.NoError(t, err)
	assert.Equal(t, MutationNone, kind)
}

func TestParseMutationKind(t *testing.T) {
	for _, k := range AllMutations() {
		got, err := ParseMutationKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseMutationKind(" MOVE ")
	require.NoError(t, err)
	assert.Equal(t, MutationMove, got)

	_, err = ParseMutationKind("swap")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

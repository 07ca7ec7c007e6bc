package tiling

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BrickFill/internal/model"
)

// requireLayoutConsistent checks that the covered area, the placement list
// and the grid agree and that no two placements overlap.
func requireLayoutConsistent(t *testing.T, l *Layout) {
	t.Helper()

	sum := 0
	ps := l.Placements()
	for i, p := range ps {
		fp := p.Footprint()
		require.True(t, fp.InBounds(l.Height(), l.Width()), "placement %v out of bounds", p)
		sum += fp.Area()
		for j := i + 1; j < len(ps); j++ {
			require.False(t, fp.Overlaps(ps[j].Footprint()), "placements %v and %v overlap", p, ps[j])
		}
	}

	nonzero := 0
	for _, row := range l.Grid() {
		for _, id := range row {
			if id != 0 {
				nonzero++
			}
		}
	}

	require.Equal(t, sum, l.CoveredArea(), "covered area must equal the placed area")
	require.Equal(t, nonzero, l.CoveredArea(), "covered area must equal the occupied cells")
}

func unitCollection(t *testing.T, n int, seed int64) *Collection {
	t.Helper()
	c, err := NewCollection(n, []model.Brick{model.MustBrick(1, 1)}, Uniform, rand.New(rand.NewSource(seed)), nil)
	require.NoError(t, err)
	return c
}

// emptyLayout returns a layout with no placements drawn from an unused pool.
func emptyLayout(t *testing.T, width, height int, shapes []model.Brick) *Layout {
	t.Helper()
	c, err := NewCollection(width*height, shapes, Uniform, rand.New(rand.NewSource(3)), nil)
	require.NoError(t, err)
	return &Layout{width: width, height: height, grid: newGrid(width, height), coll: c}
}

func TestNewLayoutValidation(t *testing.T) {
	c := unitCollection(t, 4, 1)

	_, err := NewLayout(0, 3, c)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = NewLayout(3, -1, c)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = NewLayout(3, 3, nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = NewLayout(3, 3, &Collection{})
	assert.ErrorIs(t, err, model.ErrNotInitialized)
}

func TestGreedyFillCoversGridWithUnitBricks(t *testing.T) {
	c := unitCollection(t, 25, 1)
	l, err := NewLayout(5, 5, c)
	require.NoError(t, err)

	assert.Equal(t, 25, l.CoveredArea())
	assert.True(t, l.IsFull())
	assert.Empty(t, l.EmptyCells())
	assert.Equal(t, 0, l.Collection().Available())
	requireLayoutConsistent(t, l)
}

func TestNewLayoutCopiesCollection(t *testing.T) {
	c := unitCollection(t, 25, 1)
	_, err := NewLayout(5, 5, c)
	require.NoError(t, err)
	assert.Equal(t, 25, c.Available(), "the caller's collection must not be drained")
}

func TestGreedyFillStopsWhenExhausted(t *testing.T) {
	c := unitCollection(t, 7, 1)
	l, err := NewLayout(5, 5, c)
	require.NoError(t, err)

	assert.Equal(t, 7, l.CoveredArea())
	assert.Len(t, l.EmptyCells(), 18)
	requireLayoutConsistent(t, l)
}

func TestGreedyFillWithMixedShapes(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		c, err := NewCollection(120, model.DefaultShapes(), Weighted, rand.New(rand.NewSource(seed)), nil)
		require.NoError(t, err)
		l, err := NewLayout(9, 7, c)
		require.NoError(t, err)
		requireLayoutConsistent(t, l)

		placed := 0
		for _, p := range l.Placements() {
			placed++
			assert.Greater(t, p.Brick.ID, 0)
		}
		assert.Equal(t, c.Available()-placed, l.Collection().Available())
	}
}

func TestTryPlace(t *testing.T) {
	l := emptyLayout(t, 4, 3, []model.Brick{model.MustBrick(3, 1)})
	b := model.MustBrick(3, 1).WithID(1)

	assert.False(t, l.TryPlace(0, 2, b, model.Horizontal), "runs off the right edge")
	assert.False(t, l.TryPlace(1, 0, b, model.Vertical), "runs off the bottom edge")
	assert.Equal(t, 0, l.CoveredArea())

	require.True(t, l.TryPlace(0, 1, b, model.Horizontal))
	assert.Equal(t, 3, l.CoveredArea())
	assert.Equal(t, []int{0, 1, 1, 1}, l.Grid()[0])

	other := model.MustBrick(3, 1).WithID(2)
	assert.False(t, l.TryPlace(0, 3, other, model.Vertical), "overlaps the first brick")
	require.True(t, l.TryPlace(0, 0, other, model.Vertical))
	assert.Equal(t, 2, l.Cell(2, 0))
	requireLayoutConsistent(t, l)
}

func TestTryPlaceRejectsUntaggedBrick(t *testing.T) {
	l := emptyLayout(t, 3, 3, []model.Brick{model.MustBrick(1, 1)})
	assert.False(t, l.TryPlace(0, 0, model.MustBrick(1, 1), model.Horizontal))
}

func TestTryPlaceAuto(t *testing.T) {
	// A 1x3 slot only accepts a 3x1 brick stood upright.
	l := emptyLayout(t, 1, 3, []model.Brick{model.MustBrick(3, 1)})
	p, ok := l.TryPlaceAuto(0, 0, model.MustBrick(3, 1).WithID(1))
	require.True(t, ok)
	assert.Equal(t, model.Vertical, p.Orientation)
	assert.True(t, l.IsFull())
}

func TestRemove(t *testing.T) {
	l := emptyLayout(t, 3, 3, []model.Brick{model.MustBrick(2, 1)})
	b := model.MustBrick(2, 1).WithID(4)
	require.True(t, l.TryPlace(1, 1, b, model.Horizontal))
	p := l.Placements()[0]

	assert.True(t, l.Remove(p))
	assert.Equal(t, 0, l.CoveredArea())
	assert.Empty(t, l.Placements())
	assert.Len(t, l.EmptyCells(), 9)
	assert.False(t, l.Remove(p))
}

func TestRemoveAll(t *testing.T) {
	c := unitCollection(t, 16, 2)
	l, err := NewLayout(4, 4, c)
	require.NoError(t, err)

	ps := l.Placements()
	n := l.RemoveAll(ps[:5])
	assert.Equal(t, 5, n)
	assert.Equal(t, 11, l.CoveredArea())
	requireLayoutConsistent(t, l)
	require.NoError(t, l.Revalidate())
	assert.Equal(t, 11, l.CoveredArea())
}

func TestRevalidateDetectsOverlap(t *testing.T) {
	l := emptyLayout(t, 3, 3, []model.Brick{model.MustBrick(2, 2)})
	require.True(t, l.TryPlace(0, 0, model.MustBrick(2, 2).WithID(1), model.Horizontal))
	require.NoError(t, l.Revalidate())

	l.placed = append(l.placed, model.Placement{Row: 1, Col: 1, Brick: model.MustBrick(2, 2).WithID(2)})
	assert.ErrorIs(t, l.Revalidate(), model.ErrInvariantViolation)
}

func TestRevalidateDetectsOutOfBounds(t *testing.T) {
	l := emptyLayout(t, 3, 3, []model.Brick{model.MustBrick(2, 2)})
	l.placed = append(l.placed, model.Placement{Row: 2, Col: 2, Brick: model.MustBrick(2, 2).WithID(1)})
	assert.ErrorIs(t, l.Revalidate(), model.ErrInvariantViolation)
}

func TestHasSameCoverage(t *testing.T) {
	a := unitCollection(t, 25, 1)
	l1, err := NewLayout(5, 5, a)
	require.NoError(t, err)
	l2, err := NewLayout(5, 5, a)
	require.NoError(t, err)

	assert.True(t, l1.HasSameCoverage(l1), "reflexive")
	assert.True(t, l1.HasSameCoverage(l2), "ids differ but footprints match")

	p := l2.Placements()[7]
	require.True(t, l2.Remove(p))
	assert.False(t, l1.HasSameCoverage(l2))

	relabelled := p.Brick.WithID(p.Brick.ID + 1000)
	require.True(t, l2.TryPlace(p.Row, p.Col, relabelled, p.Orientation))
	assert.True(t, l1.HasSameCoverage(l2))

	l3, err := NewLayout(5, 4, unitCollection(t, 20, 1))
	require.NoError(t, err)
	assert.False(t, l1.HasSameCoverage(l3))
	assert.False(t, l1.HasSameCoverage(nil))
}

func TestHasSameCoverageSensitiveToOrientation(t *testing.T) {
	shapes := []model.Brick{model.MustBrick(2, 1), model.MustBrick(1, 1)}
	l1 := emptyLayout(t, 2, 2, shapes)
	l2 := emptyLayout(t, 2, 2, shapes)
	require.True(t, l1.TryPlace(0, 0, model.MustBrick(2, 1).WithID(1), model.Horizontal))
	require.True(t, l2.TryPlace(0, 0, model.MustBrick(2, 1).WithID(1), model.Vertical))
	assert.False(t, l1.HasSameCoverage(l2))
}

func TestSquareBricksIgnoreOrientation(t *testing.T) {
	shapes := []model.Brick{model.MustBrick(2, 2), model.MustBrick(1, 1)}
	l1 := emptyLayout(t, 3, 3, shapes)
	l2 := emptyLayout(t, 3, 3, shapes)
	require.True(t, l1.TryPlace(0, 0, model.MustBrick(2, 2).WithID(1), model.Horizontal))
	require.True(t, l2.TryPlace(0, 0, model.MustBrick(2, 2).WithID(1), model.Vertical))
	require.True(t, l1.TryPlace(2, 2, model.MustBrick(1, 1).WithID(2), model.Vertical))
	require.True(t, l2.TryPlace(2, 2, model.MustBrick(1, 1).WithID(2), model.Horizontal))

	assert.Equal(t, l1.Grid(), l2.Grid())
	assert.True(t, l1.HasSameCoverage(l2))
	for _, p := range l2.Placements() {
		assert.Equal(t, model.Horizontal, p.Orientation, "square %s is stored horizontal", p.Brick)
	}

	// Two full unit tilings are the same tiling whatever orientations were drawn.
	f1, err := NewLayout(5, 5, unitCollection(t, 25, 1))
	require.NoError(t, err)
	f2, err := NewLayout(5, 5, unitCollection(t, 25, 2))
	require.NoError(t, err)
	require.True(t, f1.IsFull())
	require.True(t, f2.IsFull())
	assert.True(t, f1.HasSameCoverage(f2))
}

func TestCopyIsDeep(t *testing.T) {
	l, err := NewLayout(4, 4, unitCollection(t, 20, 4))
	require.NoError(t, err)
	require.Equal(t, 4, l.Collection().Available())

	cp := l.Copy()
	require.True(t, cp.HasSameCoverage(l))

	require.True(t, cp.Remove(cp.Placements()[0]))
	assert.Equal(t, 16, l.CoveredArea())
	assert.Len(t, l.Placements(), 16)

	_, ok := cp.Collection().Draw()
	require.True(t, ok)
	assert.Equal(t, 4, l.Collection().Available())
	assert.Equal(t, 3, cp.Collection().Available())
}

func TestGridIsACopy(t *testing.T) {
	l, err := NewLayout(2, 2, unitCollection(t, 4, 1))
	require.NoError(t, err)

	g := l.Grid()
	g[0][0] = 0
	assert.NotEqual(t, 0, l.Cell(0, 0))
	assert.Equal(t, 0, l.Cell(-1, 0))
	assert.Equal(t, 0, l.Cell(0, 2))
}

package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

func newInventory(t *testing.T, target int, shapes []model.Brick, seed int64) *tiling.Collection {
	t.Helper()
	c, err := tiling.NewCollection(target, shapes, tiling.Uniform, rand.New(rand.NewSource(seed)), nil)
	require.NoError(t, err)
	return c
}

func newLayout(t *testing.T, width, height, target int, shapes []model.Brick, seed int64) *tiling.Layout {
	t.Helper()
	l, err := tiling.NewLayout(width, height, newInventory(t, target, shapes, seed))
	require.NoError(t, err)
	return l
}

func unitBricks() []model.Brick {
	return []model.Brick{model.MustBrick(1, 1)}
}

// requireConsistent checks the covered area against the placements and the
// grid, that no placements overlap, and that ids are unique in the layout.
func requireConsistent(t *testing.T, l *tiling.Layout) {
	t.Helper()

	ps := l.Placements()
	sum := 0
	ids := map[int]bool{}
	for i, p := range ps {
		fp := p.Footprint()
		require.True(t, fp.InBounds(l.Height(), l.Width()), "placement %v out of bounds", p)
		require.False(t, ids[p.Brick.ID], "brick id %d placed twice", p.Brick.ID)
		ids[p.Brick.ID] = true
		sum += fp.Area()
		for j := i + 1; j < len(ps); j++ {
			require.False(t, fp.Overlaps(ps[j].Footprint()), "placements %v and %v overlap", p, ps[j])
		}
	}

	cells := 0
	for _, row := range l.Grid() {
		for _, id := range row {
			if id != 0 {
				cells++
			}
		}
	}
	require.Equal(t, sum, l.CoveredArea())
	require.Equal(t, cells, l.CoveredArea())
}

// shapeTotals counts, per shape of the layout's collection, the bricks in
// stock plus the bricks placed.
func shapeTotals(l *tiling.Layout) []int {
	coll := l.Collection()
	shapes := coll.Shapes()
	totals := make([]int, len(shapes))
	for i := range shapes {
		totals[i] = coll.Remaining(i)
	}
	for _, p := range l.Placements() {
		for i, s := range shapes {
			if s.SameShape(p.Brick) {
				totals[i]++
				break
			}
		}
	}
	return totals
}

// requireInventoryBalanced checks that l holds exactly the bricks its
// collection has issued, shape by shape, against the totals in want.
func requireInventoryBalanced(t *testing.T, l *tiling.Layout, want []int) {
	t.Helper()
	require.Equal(t, want, shapeTotals(l), "stock plus placed bricks per shape")
	require.Equal(t, len(l.Placements()), l.Collection().Outstanding(), "every placed brick is outstanding")
}

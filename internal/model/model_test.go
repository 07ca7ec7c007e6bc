package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBrickRejectsNonPositiveSides(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 1}, {1, 0}, {-2, 3}, {3, -1}} {
		_, err := NewBrick(tc.w, tc.h)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewBrick(%d, %d): expected ErrInvalidArgument, got %v", tc.w, tc.h, err)
		}
	}
}

func TestNewBrickIsUntagged(t *testing.T) {
	b, err := NewBrick(3, 2)
	require.NoError(t, err)
	assert.Equal(t, NoID, b.ID)
	assert.Equal(t, 6, b.Area())
	assert.Equal(t, "3x2", b.String())
	assert.Equal(t, "3x2#7", b.WithID(7).String())
}

func TestBrickEqualityIsByValue(t *testing.T) {
	a := MustBrick(2, 1).WithID(4)
	b := MustBrick(2, 1).WithID(4)
	c := MustBrick(2, 1).WithID(5)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, a.SameShape(c))
	assert.False(t, a.SameShape(MustBrick(1, 2)))
}

func TestMustBrickPanics(t *testing.T) {
	assert.Panics(t, func() { MustBrick(0, 1) })
}

func TestOrientationFlip(t *testing.T) {
	assert.Equal(t, Vertical, Horizontal.Flip())
	assert.Equal(t, Horizontal, Vertical.Flip())
	assert.Equal(t, "Horizontal", Horizontal.String())
	assert.Equal(t, "Vertical", Vertical.String())
}

func TestPlacementFootprint(t *testing.T) {
	b := MustBrick(3, 1)

	h := Placement{Row: 2, Col: 1, Brick: b, Orientation: Horizontal}
	assert.Equal(t, Rect{Row: 2, Col: 1, Rows: 1, Cols: 3}, h.Footprint())

	v := Placement{Row: 2, Col: 1, Brick: b, Orientation: Vertical}
	assert.Equal(t, Rect{Row: 2, Col: 1, Rows: 3, Cols: 1}, v.Footprint())
}

func TestRectOverlap(t *testing.T) {
	a := Rect{Row: 0, Col: 0, Rows: 3, Cols: 3}

	assert.Equal(t, 4, a.OverlapArea(Rect{Row: 1, Col: 1, Rows: 3, Cols: 3}))
	assert.False(t, a.Overlaps(Rect{Row: 3, Col: 0, Rows: 1, Cols: 3}), "edge-adjacent rects must not overlap")
	assert.False(t, a.Overlaps(Rect{Row: 0, Col: 3, Rows: 3, Cols: 1}))
	assert.True(t, a.ContainsRect(Rect{Row: 1, Col: 1, Rows: 2, Cols: 2}))
	assert.False(t, a.ContainsRect(Rect{Row: 1, Col: 1, Rows: 3, Cols: 2}))
}

func TestRectInBounds(t *testing.T) {
	assert.True(t, Rect{Row: 0, Col: 0, Rows: 5, Cols: 5}.InBounds(5, 5))
	assert.False(t, Rect{Row: 1, Col: 0, Rows: 5, Cols: 5}.InBounds(5, 5))
	assert.False(t, Rect{Row: -1, Col: 0, Rows: 1, Cols: 1}.InBounds(5, 5))
	assert.False(t, Rect{Row: 0, Col: 0, Rows: 0, Cols: 1}.InBounds(5, 5))
}

func TestSameFootprintIgnoresIdentity(t *testing.T) {
	a := Placement{Row: 1, Col: 2, Brick: MustBrick(2, 1).WithID(1)}
	b := Placement{Row: 1, Col: 2, Brick: MustBrick(2, 1).WithID(99)}
	assert.True(t, a.SameFootprint(b))

	b.Orientation = Vertical
	assert.False(t, a.SameFootprint(b))
}

func TestSameFootprintSquareIgnoresOrientation(t *testing.T) {
	a := Placement{Row: 0, Col: 0, Brick: MustBrick(2, 2).WithID(1), Orientation: Horizontal}
	b := Placement{Row: 0, Col: 0, Brick: MustBrick(2, 2).WithID(2), Orientation: Vertical}
	assert.True(t, a.SameFootprint(b))
	assert.Equal(t, a.Footprint(), b.Footprint())
	assert.True(t, MustBrick(1, 1).IsSquare())
	assert.False(t, MustBrick(2, 1).IsSquare())
}

func TestSortPlacements(t *testing.T) {
	ps := []Placement{
		{Row: 2, Col: 0},
		{Row: 0, Col: 3},
		{Row: 0, Col: 1},
		{Row: 1, Col: 5},
	}
	SortPlacements(ps)

	want := [][2]int{{0, 1}, {0, 3}, {1, 5}, {2, 0}}
	for i, p := range ps {
		if p.Row != want[i][0] || p.Col != want[i][1] {
			t.Errorf("position %d: expected (%d,%d), got (%d,%d)", i, want[i][0], want[i][1], p.Row, p.Col)
		}
	}
}

package tiling

import (
	"fmt"
	"strings"

	"github.com/piwi3910/BrickFill/internal/model"
)

// Point addresses one grid cell.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Layout is one candidate tiling of a height x width grid together with the
// bricks still available to it. The grid and the placement list are only
// changed through TryPlace, Remove and RemoveAll, which keep both views and
// the covered area in step.
type Layout struct {
	width   int
	height  int
	grid    [][]int // grid[row][col]; 0 is empty, otherwise a brick id
	placed  []model.Placement
	covered int
	coll    *Collection
}

// NewLayout builds a layout over a private copy of coll and fills it
// greedily: cells are scanned row by row, and each empty cell gets one
// random brick tried in both orientations, in random order. A brick that
// fits neither way goes back to the pool.
func NewLayout(width, height int, coll *Collection) (*Layout, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: layout must be at least 1x1, got %dx%d", model.ErrInvalidArgument, width, height)
	}
	if coll == nil {
		return nil, fmt.Errorf("%w: layout needs a brick collection", model.ErrInvalidArgument)
	}
	if !coll.initialized() {
		return nil, fmt.Errorf("%w: brick collection was not built with NewCollection", model.ErrNotInitialized)
	}

	l := &Layout{
		width:  width,
		height: height,
		grid:   newGrid(width, height),
		coll:   coll.Copy(),
	}
	l.fill()
	return l, nil
}

func newGrid(width, height int) [][]int {
	grid := make([][]int, height)
	for r := range grid {
		grid[r] = make([]int, width)
	}
	return grid
}

func (l *Layout) fill() {
	for r := 0; r < l.height; r++ {
		for c := 0; c < l.width; c++ {
			if l.grid[r][c] != 0 {
				continue
			}
			if l.coll.Available() == 0 {
				return
			}
			b, ok := l.coll.Draw()
			if !ok {
				return
			}
			if _, placed := l.TryPlaceAuto(r, c, b); !placed {
				l.coll.GiveBack(b)
			}
		}
	}
}

// Width returns the number of grid columns.
func (l *Layout) Width() int { return l.width }

// Height returns the number of grid rows.
func (l *Layout) Height() int { return l.height }

// Area returns the number of grid cells.
func (l *Layout) Area() int { return l.width * l.height }

// CoveredArea returns the number of cells covered by placed bricks.
func (l *Layout) CoveredArea() int { return l.covered }

// IsFull reports whether every cell is covered.
func (l *Layout) IsFull() bool { return l.covered == l.Area() }

// Collection returns the layout's own pool of unplaced bricks. Changes made
// through it affect this layout only.
func (l *Layout) Collection() *Collection { return l.coll }

// Cell returns the brick id at (row, col), or 0 when the cell is empty or
// out of bounds.
func (l *Layout) Cell(row, col int) int {
	if row < 0 || row >= l.height || col < 0 || col >= l.width {
		return 0
	}
	return l.grid[row][col]
}

// Grid returns a copy of the occupancy grid.
func (l *Layout) Grid() [][]int {
	out := make([][]int, l.height)
	for r := range l.grid {
		out[r] = make([]int, l.width)
		copy(out[r], l.grid[r])
	}
	return out
}

// Placements returns a copy of the placement list.
func (l *Layout) Placements() []model.Placement {
	out := make([]model.Placement, len(l.placed))
	copy(out, l.placed)
	return out
}

// EmptyCells lists uncovered cells in row-major order.
func (l *Layout) EmptyCells() []Point {
	var out []Point
	for r := range l.grid {
		for c, id := range l.grid[r] {
			if id == 0 {
				out = append(out, Point{Row: r, Col: c})
			}
		}
	}
	return out
}

// fits reports whether the footprint lies inside the grid over empty cells.
func (l *Layout) fits(fp model.Rect) bool {
	if !fp.InBounds(l.height, l.width) {
		return false
	}
	for r := fp.Row; r < fp.Row+fp.Rows; r++ {
		for c := fp.Col; c < fp.Col+fp.Cols; c++ {
			if l.grid[r][c] != 0 {
				return false
			}
		}
	}
	return true
}

func (l *Layout) paint(fp model.Rect, id int) {
	for r := fp.Row; r < fp.Row+fp.Rows; r++ {
		for c := fp.Col; c < fp.Col+fp.Cols; c++ {
			l.grid[r][c] = id
		}
	}
}

// TryPlace anchors b at (row, col) in the given orientation. It changes
// nothing and returns false when the footprint leaves the grid, covers an
// occupied cell, or b carries no id. Square bricks are always recorded as
// Horizontal.
func (l *Layout) TryPlace(row, col int, b model.Brick, o model.Orientation) bool {
	if b.ID < 1 || b.Width < 1 || b.Height < 1 {
		return false
	}
	if b.IsSquare() {
		o = model.Horizontal
	}
	p := model.Placement{Row: row, Col: col, Brick: b, Orientation: o}
	fp := p.Footprint()
	if !l.fits(fp) {
		return false
	}
	l.paint(fp, b.ID)
	l.placed = append(l.placed, p)
	l.covered += fp.Area()
	return true
}

// TryPlaceAuto tries both orientations in random order. A square brick is
// tried once.
func (l *Layout) TryPlaceAuto(row, col int, b model.Brick) (model.Placement, bool) {
	orientations := []model.Orientation{model.Horizontal}
	if !b.IsSquare() {
		first := model.Horizontal
		if l.coll.Rand().Intn(2) == 1 {
			first = model.Vertical
		}
		orientations = []model.Orientation{first, first.Flip()}
	}
	for _, o := range orientations {
		if l.TryPlace(row, col, b, o) {
			return l.placed[len(l.placed)-1], true
		}
	}
	return model.Placement{}, false
}

func (l *Layout) indexOf(p model.Placement) int {
	for i, q := range l.placed {
		if q.SameFootprint(p) && q.Brick.ID == p.Brick.ID {
			return i
		}
	}
	return -1
}

// Remove takes p off the grid. It returns false when p is not placed. The
// brick is not returned to the collection.
func (l *Layout) Remove(p model.Placement) bool {
	i := l.indexOf(p)
	if i < 0 {
		return false
	}
	fp := l.placed[i].Footprint()
	l.paint(fp, 0)
	l.covered -= fp.Area()
	l.placed = append(l.placed[:i], l.placed[i+1:]...)
	return true
}

// RemoveAll detaches every listed placement from the placement list, then
// clears their cells in one pass. It returns how many were removed.
func (l *Layout) RemoveAll(ps []model.Placement) int {
	var gone []model.Rect
	for _, p := range ps {
		i := l.indexOf(p)
		if i < 0 {
			continue
		}
		gone = append(gone, l.placed[i].Footprint())
		l.placed = append(l.placed[:i], l.placed[i+1:]...)
	}
	for _, fp := range gone {
		l.paint(fp, 0)
		l.covered -= fp.Area()
	}
	return len(gone)
}

// Revalidate rebuilds the grid and covered area from the placement list,
// sorted by row then column. Out-of-bounds or overlapping placements are
// reported as ErrInvariantViolation; the layout is left as far as the
// rebuild got.
func (l *Layout) Revalidate() error {
	model.SortPlacements(l.placed)
	l.grid = newGrid(l.width, l.height)
	l.covered = 0
	for _, p := range l.placed {
		fp := p.Footprint()
		if !fp.InBounds(l.height, l.width) {
			return fmt.Errorf("%w: %s at (%d,%d) leaves the %dx%d grid", model.ErrInvariantViolation, p.Brick, p.Row, p.Col, l.width, l.height)
		}
		if !l.fits(fp) {
			return fmt.Errorf("%w: %s at (%d,%d) overlaps another brick", model.ErrInvariantViolation, p.Brick, p.Row, p.Col)
		}
		l.paint(fp, p.Brick.ID)
		l.covered += fp.Area()
	}
	return nil
}

// HasSameCoverage reports whether both layouts have the same dimensions and
// the same placements by position, size and orientation. Brick ids are
// ignored.
func (l *Layout) HasSameCoverage(o *Layout) bool {
	if o == nil || l.width != o.width || l.height != o.height ||
		l.covered != o.covered || len(l.placed) != len(o.placed) {
		return false
	}
	a := l.Placements()
	b := o.Placements()
	model.SortPlacements(a)
	model.SortPlacements(b)
	for i := range a {
		if !a[i].SameFootprint(b[i]) {
			return false
		}
	}
	return true
}

// Copy returns an independent layout with its own grid, placement list and
// collection.
func (l *Layout) Copy() *Layout {
	return &Layout{
		width:   l.width,
		height:  l.height,
		grid:    l.Grid(),
		placed:  l.Placements(),
		covered: l.covered,
		coll:    l.coll.Copy(),
	}
}

func (l *Layout) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Layout %dx%d covered %d/%d\n", l.width, l.height, l.covered, l.Area())
	for _, row := range l.grid {
		for c, id := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if id == 0 {
				sb.WriteString(".")
			} else {
				fmt.Fprintf(&sb, "%d", id)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

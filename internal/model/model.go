package model

import (
	"fmt"
	"sort"
)

// NoID marks a brick that has not been issued by a collection.
const NoID = -1

// Brick is a rectangle of whole grid cells.
type Brick struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	ID     int `json:"id"`
}

// NewBrick returns an untagged brick, failing when either side is not positive.
func NewBrick(width, height int) (Brick, error) {
	if width < 1 {
		return Brick{}, fmt.Errorf("%w: brick width must be positive, got %d", ErrInvalidArgument, width)
	}
	if height < 1 {
		return Brick{}, fmt.Errorf("%w: brick height must be positive, got %d", ErrInvalidArgument, height)
	}
	return Brick{Width: width, Height: height, ID: NoID}, nil
}

// MustBrick is NewBrick for literal shape tables; it panics on bad sides.
func MustBrick(width, height int) Brick {
	b, err := NewBrick(width, height)
	if err != nil {
		panic(err)
	}
	return b
}

// Area returns width * height.
func (b Brick) Area() int {
	return b.Width * b.Height
}

// WithID returns a copy of the brick tagged with id.
func (b Brick) WithID(id int) Brick {
	b.ID = id
	return b
}

// SameShape reports whether both bricks have the same declared dimensions.
func (b Brick) SameShape(o Brick) bool {
	return b.Width == o.Width && b.Height == o.Height
}

// IsSquare reports whether both orientations cover the same cells.
func (b Brick) IsSquare() bool {
	return b.Width == b.Height
}

func (b Brick) String() string {
	if b.ID == NoID {
		return fmt.Sprintf("%dx%d", b.Width, b.Height)
	}
	return fmt.Sprintf("%dx%d#%d", b.Width, b.Height, b.ID)
}

// Orientation selects how a brick's declared sides map onto the grid.
type Orientation int

const (
	Horizontal Orientation = iota // Height along rows, Width along columns
	Vertical                      // Width along rows, Height along columns
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "Vertical"
	default:
		return "Horizontal"
	}
}

// Flip returns the other orientation.
func (o Orientation) Flip() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

// Rect is a half-open rectangle of grid cells: rows [Row, Row+Rows) and
// columns [Col, Col+Cols).
type Rect struct {
	Row  int `json:"row"`
	Col  int `json:"col"`
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// OverlapArea returns the number of cells shared by both rectangles.
func (r Rect) OverlapArea(o Rect) int {
	dr := min(r.Row+r.Rows, o.Row+o.Rows) - max(r.Row, o.Row)
	dc := min(r.Col+r.Cols, o.Col+o.Cols) - max(r.Col, o.Col)
	if dr <= 0 || dc <= 0 {
		return 0
	}
	return dr * dc
}

// Overlaps reports whether the rectangles share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.OverlapArea(o) > 0
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Row >= r.Row && o.Col >= r.Col &&
		o.Row+o.Rows <= r.Row+r.Rows &&
		o.Col+o.Cols <= r.Col+r.Cols
}

// InBounds reports whether r fits inside a rows x cols grid.
func (r Rect) InBounds(rows, cols int) bool {
	return r.Row >= 0 && r.Col >= 0 && r.Rows > 0 && r.Cols > 0 &&
		r.Row+r.Rows <= rows && r.Col+r.Cols <= cols
}

// Area returns Rows * Cols.
func (r Rect) Area() int {
	return r.Rows * r.Cols
}

// Placement is one brick anchored at (Row, Col) on a grid.
type Placement struct {
	Row         int         `json:"row"`
	Col         int         `json:"col"`
	Brick       Brick       `json:"brick"`
	Orientation Orientation `json:"orientation"`
}

// Rows returns the number of grid rows the brick spans.
func (p Placement) Rows() int {
	if p.Orientation == Vertical {
		return p.Brick.Width
	}
	return p.Brick.Height
}

// Cols returns the number of grid columns the brick spans.
func (p Placement) Cols() int {
	if p.Orientation == Vertical {
		return p.Brick.Height
	}
	return p.Brick.Width
}

// Footprint returns the cells covered by the placement.
func (p Placement) Footprint() Rect {
	return Rect{Row: p.Row, Col: p.Col, Rows: p.Rows(), Cols: p.Cols()}
}

// SameFootprint compares position, declared size and orientation, ignoring
// brick identity. Orientation is not compared for square bricks.
func (p Placement) SameFootprint(o Placement) bool {
	return p.Row == o.Row && p.Col == o.Col &&
		p.Brick.SameShape(o.Brick) &&
		(p.Orientation == o.Orientation || p.Brick.IsSquare())
}

// SortPlacements orders placements by row, then column.
func SortPlacements(ps []Placement) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Row != ps[j].Row {
			return ps[i].Row < ps[j].Row
		}
		return ps[i].Col < ps[j].Col
	})
}

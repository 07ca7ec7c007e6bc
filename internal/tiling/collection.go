package tiling

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/piwi3910/BrickFill/internal/model"
)

// Mode selects how a Collection picks the next brick.
type Mode int

const (
	Uniform  Mode = iota // every shape with stock is equally likely
	Weighted             // likelihood is proportional to shape area
)

func (m Mode) String() string {
	switch m {
	case Weighted:
		return model.ModeWeighted
	default:
		return model.ModeUniform
	}
}

// ParseMode converts "uniform" or "weighted" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case model.ModeUniform, "":
		return Uniform, nil
	case model.ModeWeighted:
		return Weighted, nil
	}
	return Uniform, fmt.Errorf("%w: unknown draw mode %q", model.ErrInvalidArgument, s)
}

// Collection is a finite pool of bricks of a fixed set of shapes. Every brick
// it hands out carries a fresh id and stays outstanding until it is given
// back. The zero value is an uninitialized collection that holds nothing;
// build usable ones with NewCollection.
type Collection struct {
	shapes      []model.Brick
	remaining   []int
	available   int
	mode        Mode
	outstanding map[int]int // brick id -> shape index
	rng         *rand.Rand
	ids         *IDGenerator
}

// NewCollection builds a collection whose initial stock covers at least
// targetArea cells. Shapes are deduplicated by dimensions and ordered by
// area. An empty shape list gives a valid collection that is permanently
// exhausted. A nil ids starts a new id family.
func NewCollection(targetArea int, shapes []model.Brick, mode Mode, rng *rand.Rand, ids *IDGenerator) (*Collection, error) {
	if targetArea <= 0 {
		return nil, fmt.Errorf("%w: target area must be positive, got %d", model.ErrInvalidArgument, targetArea)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: collection needs a random source", model.ErrInvalidArgument)
	}
	if mode != Uniform && mode != Weighted {
		return nil, fmt.Errorf("%w: unknown draw mode %d", model.ErrInvalidArgument, int(mode))
	}
	if ids == nil {
		ids = NewIDGenerator()
	}

	c := &Collection{
		mode:        mode,
		outstanding: make(map[int]int),
		rng:         rng,
		ids:         ids,
	}

	seen := make(map[[2]int]bool, len(shapes))
	for _, s := range shapes {
		if s.Width < 1 || s.Height < 1 {
			return nil, fmt.Errorf("%w: shape %dx%d has a non-positive side", model.ErrInvalidArgument, s.Width, s.Height)
		}
		key := [2]int{s.Width, s.Height}
		if seen[key] {
			continue
		}
		seen[key] = true
		c.shapes = append(c.shapes, s.WithID(model.NoID))
	}
	sort.SliceStable(c.shapes, func(i, j int) bool {
		return c.shapes[i].Area() < c.shapes[j].Area()
	})
	c.remaining = make([]int, len(c.shapes))

	if len(c.shapes) > 0 {
		c.stock(targetArea)
	}
	return c, nil
}

// stock fills the initial counts until their combined area reaches target.
func (c *Collection) stock(target int) {
	area := 0
	switch c.mode {
	case Weighted:
		total := 0
		for _, s := range c.shapes {
			total += s.Area()
		}
		for area < target {
			i := c.pickWeighted(func(i int) int { return c.shapes[i].Area() }, total)
			c.remaining[i]++
			area += c.shapes[i].Area()
		}
	default:
		for i := 0; area < target; i = (i + 1) % len(c.shapes) {
			c.remaining[i]++
			area += c.shapes[i].Area()
		}
	}
	for _, n := range c.remaining {
		c.available += n
	}
}

// pickWeighted samples an index with probability weight(i)/total.
func (c *Collection) pickWeighted(weight func(int) int, total int) int {
	r := c.rng.Intn(total)
	for i := range c.shapes {
		w := weight(i)
		if r < w {
			return i
		}
		r -= w
	}
	return len(c.shapes) - 1
}

func (c *Collection) initialized() bool {
	return c != nil && c.ids != nil
}

// Draw takes one random brick out of the pool. It returns false when the
// pool is exhausted.
func (c *Collection) Draw() (model.Brick, bool) {
	if c.Available() == 0 {
		return model.Brick{}, false
	}

	var idx int
	switch c.mode {
	case Weighted:
		total := 0
		for i, s := range c.shapes {
			if c.remaining[i] > 0 {
				total += s.Area()
			}
		}
		idx = c.pickWeighted(func(i int) int {
			if c.remaining[i] > 0 {
				return c.shapes[i].Area()
			}
			return 0
		}, total)
	default:
		k := c.rng.Intn(c.stockedShapes())
		for i, n := range c.remaining {
			if n == 0 {
				continue
			}
			if k == 0 {
				idx = i
				break
			}
			k--
		}
	}
	return c.take(idx), true
}

// DrawExact takes a brick of exactly width x height. Sides are not swapped.
func (c *Collection) DrawExact(width, height int) (model.Brick, bool) {
	if !c.initialized() {
		return model.Brick{}, false
	}
	for i, s := range c.shapes {
		if s.Width == width && s.Height == height && c.remaining[i] > 0 {
			return c.take(i), true
		}
	}
	return model.Brick{}, false
}

func (c *Collection) take(idx int) model.Brick {
	c.remaining[idx]--
	c.available--
	b := c.shapes[idx].WithID(c.ids.Next())
	c.outstanding[b.ID] = idx
	return b
}

func (c *Collection) stockedShapes() int {
	n := 0
	for _, r := range c.remaining {
		if r > 0 {
			n++
		}
	}
	return n
}

// GiveBack returns an outstanding brick to the pool. Bricks this collection
// never issued, or already took back, are ignored and reported as false.
func (c *Collection) GiveBack(b model.Brick) bool {
	if !c.initialized() {
		return false
	}
	idx, ok := c.outstanding[b.ID]
	if !ok || !c.shapes[idx].SameShape(b) {
		return false
	}
	delete(c.outstanding, b.ID)
	c.remaining[idx]++
	c.available++
	return true
}

// Adopt records a brick issued elsewhere as outstanding here, taking one
// brick of the same shape out of stock. It returns false, recording nothing,
// when the id is already outstanding or no brick of that shape is in stock.
func (c *Collection) Adopt(b model.Brick) bool {
	if !c.initialized() || b.ID < 1 {
		return false
	}
	if _, dup := c.outstanding[b.ID]; dup {
		return false
	}
	for i, s := range c.shapes {
		if s.SameShape(b) && c.remaining[i] > 0 {
			c.remaining[i]--
			c.available--
			c.outstanding[b.ID] = i
			return true
		}
	}
	return false
}

// Retag returns b carrying a fresh id from this collection's id family.
func (c *Collection) Retag(b model.Brick) model.Brick {
	if !c.initialized() {
		return b
	}
	return b.WithID(c.ids.Next())
}

// Available returns the number of bricks left in stock.
func (c *Collection) Available() int {
	if !c.initialized() {
		return 0
	}
	return c.available
}

// ShapeCount returns the number of distinct shapes.
func (c *Collection) ShapeCount() int {
	if !c.initialized() {
		return 0
	}
	return len(c.shapes)
}

// Shapes returns the distinct shapes in area order.
func (c *Collection) Shapes() []model.Brick {
	if !c.initialized() {
		return nil
	}
	out := make([]model.Brick, len(c.shapes))
	copy(out, c.shapes)
	return out
}

// Remaining returns the stock count of shape i, or 0 for an unknown index.
func (c *Collection) Remaining(i int) int {
	if !c.initialized() || i < 0 || i >= len(c.remaining) {
		return 0
	}
	return c.remaining[i]
}

// Outstanding returns the number of issued bricks not yet given back.
func (c *Collection) Outstanding() int {
	if !c.initialized() {
		return 0
	}
	return len(c.outstanding)
}

// Mode returns the draw mode.
func (c *Collection) Mode() Mode {
	if c == nil {
		return Uniform
	}
	return c.mode
}

// Rand returns the random source draws use.
func (c *Collection) Rand() *rand.Rand {
	if c == nil {
		return nil
	}
	return c.rng
}

// IDs returns the id generator shared by this collection and its copies.
func (c *Collection) IDs() *IDGenerator {
	if c == nil {
		return nil
	}
	return c.ids
}

// Copy returns an independent collection with the same shapes, counts and
// outstanding bricks. The copy shares the id generator and random source.
// Copying an uninitialized collection yields another uninitialized one.
func (c *Collection) Copy() *Collection {
	if !c.initialized() {
		return &Collection{}
	}
	cp := &Collection{
		shapes:      make([]model.Brick, len(c.shapes)),
		remaining:   make([]int, len(c.remaining)),
		available:   c.available,
		mode:        c.mode,
		outstanding: make(map[int]int, len(c.outstanding)),
		rng:         c.rng,
		ids:         c.ids,
	}
	copy(cp.shapes, c.shapes)
	copy(cp.remaining, c.remaining)
	for id, idx := range c.outstanding {
		cp.outstanding[id] = idx
	}
	return cp
}

func (c *Collection) String() string {
	if !c.initialized() {
		return "Collection(uninitialized)"
	}
	parts := make([]string, len(c.shapes))
	for i, s := range c.shapes {
		parts[i] = fmt.Sprintf("%s:%d", s, c.remaining[i])
	}
	return fmt.Sprintf("Collection(%s, %d available: %s)", c.mode, c.available, strings.Join(parts, " "))
}

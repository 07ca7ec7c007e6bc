package engine

import (
	"fmt"
	"math/rand"

	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

// Partition splits the layout's placements against a window. Bricks lying
// wholly inside the window are cross bricks; bricks straddling its edge are
// constraints. Bricks outside the window appear in neither list.
func Partition(l *tiling.Layout, window model.Rect) (cross, constraints []model.Placement) {
	for _, p := range l.Placements() {
		fp := p.Footprint()
		switch {
		case window.ContainsRect(fp):
			cross = append(cross, p)
		case window.Overlaps(fp):
			constraints = append(constraints, p)
		}
	}
	return cross, constraints
}

// propagate demotes cross bricks that collide with the other side's
// constraints until neither side changes. Whatever stays in a cross set can
// then be dropped into the other layout without hitting anything.
func propagate(crossA, consA, crossB, consB []model.Placement) ([]model.Placement, []model.Placement, []model.Placement, []model.Placement) {
	for {
		var movedA, movedB bool
		crossA, consA, movedA = demote(crossA, consA, consB)
		crossB, consB, movedB = demote(crossB, consB, consA)
		if !movedA && !movedB {
			return crossA, consA, crossB, consB
		}
	}
}

func demote(cross, own, other []model.Placement) ([]model.Placement, []model.Placement, bool) {
	moved := false
	kept := cross[:0:0]
	for _, p := range cross {
		if collides(p, other) {
			own = append(own, p)
			moved = true
			continue
		}
		kept = append(kept, p)
	}
	return kept, own, moved
}

func collides(p model.Placement, against []model.Placement) bool {
	fp := p.Footprint()
	for _, q := range against {
		if fp.Overlaps(q.Footprint()) {
			return true
		}
	}
	return false
}

// randomWindow picks a window inside the shared bounds of both parents.
func randomWindow(rows, cols int, cfg CrossoverConfig, rng *rand.Rand) model.Rect {
	maxSide := cfg.sideCap(min(rows, cols))
	side := func(limit int) int {
		s := cfg.MinSide
		if maxSide > cfg.MinSide {
			s += rng.Intn(maxSide - cfg.MinSide + 1)
		}
		return min(s, limit)
	}
	w := model.Rect{Rows: side(rows), Cols: side(cols)}
	w.Row = rng.Intn(rows - w.Rows + 1)
	w.Col = rng.Intn(cols - w.Cols + 1)
	return w
}

// Crossover recombines two parents by swapping the bricks inside a random
// window. The parents are left untouched. When no window with something to
// exchange, and stock for it on both sides, turns up within cfg.MaxAttempts
// the error wraps
// ErrCrossoverExhausted; any other error is an invariant violation.
func Crossover(p1, p2 *tiling.Layout, cfg CrossoverConfig, rng *rand.Rand) (*tiling.Layout, *tiling.Layout, error) {
	rows := min(p1.Height(), p2.Height())
	cols := min(p1.Width(), p2.Width())

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		window := randomWindow(rows, cols, cfg, rng)
		c1, c2, ok, err := exchange(p1, p2, window)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			return c1, c2, nil
		}
	}
	return nil, nil, fmt.Errorf("%w after %d windows", model.ErrCrossoverExhausted, cfg.MaxAttempts)
}

// CrossoverAt swaps the bricks inside a fixed window. It returns false when
// nothing inside the window can be exchanged, or when a child's inventory
// has too few bricks of a shape to take what it would receive.
func CrossoverAt(p1, p2 *tiling.Layout, window model.Rect) (*tiling.Layout, *tiling.Layout, bool, error) {
	return exchange(p1, p2, window)
}

func exchange(p1, p2 *tiling.Layout, window model.Rect) (*tiling.Layout, *tiling.Layout, bool, error) {
	crossA, consA := Partition(p1, window)
	crossB, consB := Partition(p2, window)
	crossA, _, crossB, _ = propagate(crossA, consA, crossB, consB)
	if len(crossA) == 0 && len(crossB) == 0 {
		return nil, nil, false, nil
	}

	c1 := p1.Copy()
	c2 := p2.Copy()
	c1.RemoveAll(crossA)
	c2.RemoveAll(crossB)
	for _, p := range crossA {
		c1.Collection().GiveBack(p.Brick)
	}
	for _, p := range crossB {
		c2.Collection().GiveBack(p.Brick)
	}
	if !canAdopt(c1.Collection(), crossB) || !canAdopt(c2.Collection(), crossA) {
		return nil, nil, false, nil
	}

	if err := receive(c1, crossB); err != nil {
		return nil, nil, false, err
	}
	if err := receive(c2, crossA); err != nil {
		return nil, nil, false, err
	}
	return c1, c2, true, nil
}

// canAdopt reports whether coll has stock for every incoming brick, counted
// per shape.
func canAdopt(coll *tiling.Collection, incoming []model.Placement) bool {
	shapes := coll.Shapes()
	need := make(map[int]int, len(shapes))
	for _, p := range incoming {
		idx := -1
		for i, s := range shapes {
			if s.SameShape(p.Brick) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false
		}
		need[idx]++
	}
	for i, n := range need {
		if coll.Remaining(i) < n {
			return false
		}
	}
	return true
}

// receive places bricks from the other parent at their original positions,
// re-tagged so ids stay unique inside the receiving layout and taken out of
// the receiver's stock. The layout is revalidated after every insertion.
func receive(l *tiling.Layout, incoming []model.Placement) error {
	coll := l.Collection()
	for _, p := range incoming {
		b := coll.Retag(p.Brick)
		if !coll.Adopt(b) {
			return fmt.Errorf("%w: crossover has no stock for %s", model.ErrInvariantViolation, b)
		}
		if !l.TryPlace(p.Row, p.Col, b, p.Orientation) {
			return fmt.Errorf("%w: crossover could not re-insert %s at (%d,%d)", model.ErrInvariantViolation, b, p.Row, p.Col)
		}
		if err := l.Revalidate(); err != nil {
			return err
		}
	}
	return nil
}

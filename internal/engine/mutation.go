package engine

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

// MutationKind names one of the single-layout edits.
type MutationKind int

const (
	MutationNone MutationKind = iota - 1
	MutationChange
	MutationAdd
	MutationRemove
	MutationMove
)

func (k MutationKind) String() string {
	switch k {
	case MutationChange:
		return "change"
	case MutationAdd:
		return "add"
	case MutationRemove:
		return "remove"
	case MutationMove:
		return "move"
	default:
		return "none"
	}
}

// ParseMutationKind converts a mutation name into its kind.
func ParseMutationKind(s string) (MutationKind, error) {
	for _, k := range AllMutations() {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return MutationNone, fmt.Errorf("%w: unknown mutation %q", model.ErrInvalidArgument, s)
}

// AllMutations returns every mutation kind.
func AllMutations() []MutationKind {
	return []MutationKind{MutationChange, MutationAdd, MutationRemove, MutationMove}
}

// MutationFunc edits a layout in place. It reports whether the edit took
// effect; the error is reserved for invariant violations.
type MutationFunc func(l *tiling.Layout, rng *rand.Rand) (bool, error)

var mutations = map[MutationKind]MutationFunc{
	MutationChange: ChangeMutation,
	MutationAdd:    AddMutation,
	MutationRemove: RemoveMutation,
	MutationMove:   MoveMutation,
}

// Mutate applies one mutation, picked uniformly from kinds, with
// probability threshold. It returns MutationNone when the gate stays shut.
func Mutate(l *tiling.Layout, threshold float64, kinds []MutationKind, rng *rand.Rand) (MutationKind, bool, error) {
	if len(kinds) == 0 || rng.Float64() >= threshold {
		return MutationNone, false, nil
	}
	kind := kinds[rng.Intn(len(kinds))]
	fn, ok := mutations[kind]
	if !ok {
		return kind, false, fmt.Errorf("%w: unknown mutation kind %d", model.ErrInvalidArgument, int(kind))
	}
	applied, err := fn(l, rng)
	return kind, applied, err
}

func randomPlacement(l *tiling.Layout, rng *rand.Rand) (model.Placement, bool) {
	ps := l.Placements()
	if len(ps) == 0 {
		return model.Placement{}, false
	}
	return ps[rng.Intn(len(ps))], true
}

// restore puts a removed placement back where it was.
func restore(l *tiling.Layout, p model.Placement) error {
	if !l.TryPlace(p.Row, p.Col, p.Brick, p.Orientation) {
		return fmt.Errorf("%w: could not restore %s at (%d,%d)", model.ErrInvariantViolation, p.Brick, p.Row, p.Col)
	}
	return nil
}

// ChangeMutation swaps a random placed brick for a freshly drawn one at the
// same anchor. When the new brick does not fit, the exchange is undone.
func ChangeMutation(l *tiling.Layout, rng *rand.Rand) (bool, error) {
	old, ok := randomPlacement(l, rng)
	if !ok {
		return false, l.Revalidate()
	}
	coll := l.Collection()
	l.Remove(old)
	returned := coll.GiveBack(old.Brick)

	if b, drawn := coll.Draw(); drawn {
		if _, placed := l.TryPlaceAuto(old.Row, old.Col, b); placed {
			return true, l.Revalidate()
		}
		coll.GiveBack(b)
	}

	if returned {
		coll.Adopt(old.Brick)
	}
	if err := restore(l, old); err != nil {
		return false, err
	}
	return false, l.Revalidate()
}

// AddMutation drops a drawn brick on a random empty cell.
func AddMutation(l *tiling.Layout, rng *rand.Rand) (bool, error) {
	empty := l.EmptyCells()
	coll := l.Collection()
	if len(empty) == 0 || coll.Available() == 0 {
		return false, l.Revalidate()
	}
	cell := empty[rng.Intn(len(empty))]
	b, ok := coll.Draw()
	if !ok {
		return false, l.Revalidate()
	}
	if _, placed := l.TryPlaceAuto(cell.Row, cell.Col, b); !placed {
		coll.GiveBack(b)
		return false, l.Revalidate()
	}
	return true, l.Revalidate()
}

// RemoveMutation takes a random brick off the grid and back into the pool.
func RemoveMutation(l *tiling.Layout, rng *rand.Rand) (bool, error) {
	p, ok := randomPlacement(l, rng)
	if !ok {
		return false, l.Revalidate()
	}
	l.Remove(p)
	l.Collection().GiveBack(p.Brick)
	return true, l.Revalidate()
}

var steps = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// MoveMutation shifts a random brick one cell in the first free direction,
// trying the four directions in random order.
func MoveMutation(l *tiling.Layout, rng *rand.Rand) (bool, error) {
	p, ok := randomPlacement(l, rng)
	if !ok {
		return false, l.Revalidate()
	}
	l.Remove(p)
	for _, i := range rng.Perm(len(steps)) {
		d := steps[i]
		if l.TryPlace(p.Row+d[0], p.Col+d[1], p.Brick, p.Orientation) {
			return true, l.Revalidate()
		}
	}
	if err := restore(l, p); err != nil {
		return false, err
	}
	return false, l.Revalidate()
}

package model

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// ShapeSet is a named, reusable list of brick shapes.
type ShapeSet struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Shapes []Brick `json:"shapes"`
}

// NewShapeSet creates a new ShapeSet with a generated ID.
func NewShapeSet(name string, shapes []Brick) ShapeSet {
	cp := make([]Brick, len(shapes))
	for i, s := range shapes {
		cp[i] = s.WithID(NoID)
	}
	return ShapeSet{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Shapes: cp,
	}
}

// Validate checks that every shape has positive sides.
func (s ShapeSet) Validate() error {
	for i, b := range s.Shapes {
		if b.Width < 1 || b.Height < 1 {
			return fmt.Errorf("%w: shape set %q entry %d has size %dx%d", ErrInvalidArgument, s.Name, i+1, b.Width, b.Height)
		}
	}
	return nil
}

// ShapeLibrary holds the user's saved shape sets.
type ShapeLibrary struct {
	Sets []ShapeSet `json:"sets"`
}

// DefaultShapeLibrary returns a library populated with the built-in sets.
func DefaultShapeLibrary() ShapeLibrary {
	return ShapeLibrary{
		Sets: []ShapeSet{
			NewShapeSet("lego", DefaultShapes()),
			NewShapeSet("unit", []Brick{MustBrick(1, 1)}),
			NewShapeSet("dominoes", []Brick{MustBrick(1, 1), MustBrick(2, 1)}),
			NewShapeSet("plates", []Brick{MustBrick(2, 2), MustBrick(4, 2), MustBrick(4, 4), MustBrick(6, 2)}),
		},
	}
}

// FindByName returns a pointer to the first set with the given name, or nil.
func (lib *ShapeLibrary) FindByName(name string) *ShapeSet {
	for i := range lib.Sets {
		if lib.Sets[i].Name == name {
			return &lib.Sets[i]
		}
	}
	return nil
}

// FindByID returns a pointer to the set with the given ID, or nil.
func (lib *ShapeLibrary) FindByID(id string) *ShapeSet {
	for i := range lib.Sets {
		if lib.Sets[i].ID == id {
			return &lib.Sets[i]
		}
	}
	return nil
}

// Names returns the set names in library order.
func (lib *ShapeLibrary) Names() []string {
	names := make([]string, len(lib.Sets))
	for i, s := range lib.Sets {
		names[i] = s.Name
	}
	return names
}

// DefaultShapes returns the standard brick set: 1, 2, 3, 4, 5 and 8 studs
// long in widths of one and two.
func DefaultShapes() []Brick {
	return []Brick{
		MustBrick(1, 1),
		MustBrick(2, 1),
		MustBrick(3, 1),
		MustBrick(4, 1),
		MustBrick(5, 1),
		MustBrick(8, 1),
		MustBrick(2, 2),
		MustBrick(3, 2),
		MustBrick(4, 2),
		MustBrick(5, 2),
		MustBrick(8, 2),
	}
}

// RandomShapes returns n distinct shapes with sides in [1, maxRib], each
// normalised so that Width <= Height. It fails when n exceeds the number of
// distinct shapes that exist for maxRib.
func RandomShapes(n, maxRib int, rng *rand.Rand) ([]Brick, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: shape count must be positive, got %d", ErrInvalidArgument, n)
	}
	if maxRib < 1 {
		return nil, fmt.Errorf("%w: max brick side must be positive, got %d", ErrInvalidArgument, maxRib)
	}
	if limit := maxRib * (maxRib + 1) / 2; n > limit {
		return nil, fmt.Errorf("%w: only %d distinct shapes exist with sides up to %d, asked for %d", ErrInvalidArgument, limit, maxRib, n)
	}

	seen := make(map[[2]int]bool, n)
	shapes := make([]Brick, 0, n)
	for len(shapes) < n {
		w := rng.Intn(maxRib) + 1
		h := rng.Intn(maxRib) + 1
		if w > h {
			w, h = h, w
		}
		key := [2]int{w, h}
		if seen[key] {
			continue
		}
		seen[key] = true
		shapes = append(shapes, MustBrick(w, h))
	}
	return shapes, nil
}

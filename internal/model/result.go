package model

import (
	"time"

	"github.com/google/uuid"
)

// RunResult is the exported outcome of one tiling run: the best layout found
// together with the settings and per-generation statistics that produced it.
type RunResult struct {
	ID          string            `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	Settings    RunSettings       `json:"settings"`
	Shapes      []Brick           `json:"shapes"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	CoveredArea int               `json:"covered_area"`
	Grid        [][]int           `json:"grid"`
	Placements  []Placement       `json:"placements"`
	Stats       []GenerationStats `json:"stats"`
}

// NewRunResult creates a RunResult with a fresh run ID and timestamp.
func NewRunResult(settings RunSettings, width, height int) RunResult {
	return RunResult{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now().UTC(),
		Settings:   settings,
		Width:      width,
		Height:     height,
		Shapes:     []Brick{},
		Grid:       [][]int{},
		Placements: []Placement{},
		Stats:      []GenerationStats{},
	}
}

// TotalArea returns the number of cells on the surface.
func (r RunResult) TotalArea() int {
	return r.Width * r.Height
}

// Coverage returns the covered share of the surface as a percentage.
func (r RunResult) Coverage() float64 {
	return CoveragePercent(r.CoveredArea, r.TotalArea())
}

// FullCoverage reports whether every cell is covered.
func (r RunResult) FullCoverage() bool {
	return r.TotalArea() > 0 && r.CoveredArea == r.TotalArea()
}

// ShortID returns the first eight characters of the run ID.
func (r RunResult) ShortID() string {
	if len(r.ID) <= 8 {
		return r.ID
	}
	return r.ID[:8]
}

// ShapeCounts returns how many placements use each shape, keyed by the
// shape's "WxH" string.
func (r RunResult) ShapeCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range r.Placements {
		counts[p.Brick.WithID(NoID).String()]++
	}
	return counts
}

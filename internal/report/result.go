package report

import (
	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

// BuildResult snapshots a layout and the run's statistics into a RunResult.
func BuildResult(settings model.RunSettings, shapes []model.Brick, best *tiling.Layout, stats []model.GenerationStats) model.RunResult {
	r := model.NewRunResult(settings, settings.Width, settings.Height)
	r.Shapes = append(r.Shapes, shapes...)
	r.Stats = append(r.Stats, stats...)
	if best == nil {
		return r
	}

	r.Width = best.Width()
	r.Height = best.Height()
	r.CoveredArea = best.CoveredArea()
	r.Grid = best.Grid()
	r.Placements = best.Placements()
	model.SortPlacements(r.Placements)
	return r
}

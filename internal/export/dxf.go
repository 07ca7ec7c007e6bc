package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/piwi3910/BrickFill/internal/model"
)

// DXF layer names.
const (
	layerSurface = "SURFACE"
	layerBricks  = "BRICKS"
	layerLabels  = "LABELS"
)

// ExportDXF writes the layout as a DXF drawing: the surface outline, one
// closed LWPOLYLINE per brick and a text label with each brick's shape.
// One drawing unit is one grid cell. Row 0 is drawn at the top, so the
// drawing reads like the terminal rendering.
func ExportDXF(path string, result model.RunResult) error {
	if err := checkResult(result); err != nil {
		return err
	}

	d := dxf.NewDrawing()
	for _, name := range []string{layerSurface, layerBricks, layerLabels} {
		if _, err := d.AddLayer(name, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", name, err)
		}
	}

	if err := d.ChangeLayer(layerSurface); err != nil {
		return err
	}
	if _, err := d.LwPolyline(true, cellRect(result.Height, 0, 0, result.Height, result.Width)...); err != nil {
		return fmt.Errorf("failed to draw surface: %w", err)
	}

	if err := d.ChangeLayer(layerBricks); err != nil {
		return err
	}
	for _, p := range result.Placements {
		if _, err := d.LwPolyline(true, cellRect(result.Height, p.Row, p.Col, p.Rows(), p.Cols())...); err != nil {
			return fmt.Errorf("failed to draw brick %d: %w", p.Brick.ID, err)
		}
	}

	if err := d.ChangeLayer(layerLabels); err != nil {
		return err
	}
	for _, p := range result.Placements {
		x := float64(p.Col) + 0.1
		y := float64(result.Height-p.Row-p.Rows()) + 0.1
		if _, err := d.Text(shapeKey(p.Brick), x, y, 0, 0.25); err != nil {
			return fmt.Errorf("failed to label brick %d: %w", p.Brick.ID, err)
		}
	}

	return d.SaveAs(path)
}

// cellRect returns the four corners of a cell rectangle in drawing
// coordinates, counter-clockwise from the bottom left.
func cellRect(surfaceRows, row, col, rows, cols int) [][]float64 {
	x0 := float64(col)
	x1 := float64(col + cols)
	y0 := float64(surfaceRows - row - rows)
	y1 := float64(surfaceRows - row)
	return [][]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

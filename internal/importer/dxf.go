package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/BrickFill/internal/model"
)

// sideTolerance is how far a DXF coordinate may sit from a whole cell.
const sideTolerance = 0.01

// ImportDXF imports shapes from a DXF file. Every LWPOLYLINE that traces an
// axis-aligned rectangle with whole-number sides becomes one shape; one DXF
// unit is one grid cell. Other entities are skipped.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	seen := map[[2]int]bool{}
	num := 0
	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			continue
		}
		num++
		label := fmt.Sprintf("Polyline %d", num)

		w, h, ok := rectangleSides(lw.Vertices)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Skipped, not an axis-aligned rectangle", label))
			continue
		}
		width, wok := wholeCells(w)
		height, hok := wholeCells(h)
		if !wok || !hok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: Skipped, sides %.2f x %.2f are not whole cells", label, w, h))
			continue
		}

		shape := model.MustBrick(width, height)
		key := [2]int{width, height}
		if seen[key] {
			continue
		}
		seen[key] = true
		result.Shapes = append(result.Shapes, shape)
	}

	if len(result.Shapes) == 0 {
		result.Errors = append(result.Errors, "No rectangular shapes found in DXF file")
	}
	return result
}

// rectangleSides returns the bounding box sides of the vertices if every
// vertex sits on a corner of that box.
func rectangleSides(vertices [][]float64) (float64, float64, bool) {
	if len(vertices) < 4 {
		return 0, 0, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		if len(v) < 2 {
			return 0, 0, false
		}
		minX, maxX = math.Min(minX, v[0]), math.Max(maxX, v[0])
		minY, maxY = math.Min(minY, v[1]), math.Max(maxY, v[1])
	}
	near := func(a, b float64) bool { return math.Abs(a-b) <= sideTolerance }
	for _, v := range vertices {
		onX := near(v[0], minX) || near(v[0], maxX)
		onY := near(v[1], minY) || near(v[1], maxY)
		if !onX || !onY {
			return 0, 0, false
		}
	}
	return maxX - minX, maxY - minY, true
}

func wholeCells(v float64) (int, bool) {
	n := math.Round(v)
	if n < 1 || math.Abs(v-n) > sideTolerance {
		return 0, false
	}
	return int(n), true
}

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/BrickFill/internal/model"
)

const (
	cellFilled = "██"
	cellEmpty  = "· "
)

// discretePalette colours neighbouring bricks apart by cycling on brick id.
var discretePalette = []lipgloss.Color{
	"34", "33", "208", "129", "44", "196", "226", "130", "170", "118",
}

// gradientRamp runs from cold (small bricks) to hot (large bricks).
var gradientRamp = []lipgloss.Color{
	"21", "27", "33", "39", "45", "51", "50", "49", "48", "47",
	"46", "82", "118", "154", "190", "226", "220", "214", "208", "202", "196",
}

// renderGrid draws a grid of brick ids. With the discrete style every brick
// gets a palette colour by id. With the gradient style the colour follows
// the brick's area, from the smallest to the largest placed shape.
func renderGrid(grid [][]int, placements []model.Placement, style string) string {
	area := make(map[int]int, len(placements))
	minArea, maxArea := 0, 0
	for _, p := range placements {
		a := p.Brick.Area()
		area[p.Brick.ID] = a
		if minArea == 0 || a < minArea {
			minArea = a
		}
		maxArea = max(maxArea, a)
	}

	styles := make(map[int]lipgloss.Style)
	styleFor := func(id int) lipgloss.Style {
		if s, ok := styles[id]; ok {
			return s
		}
		var c lipgloss.Color
		if style == model.ColorDiscrete {
			c = discretePalette[id%len(discretePalette)]
		} else {
			c = gradientRamp[rampIndex(area[id], minArea, maxArea, len(gradientRamp))]
		}
		s := lipgloss.NewStyle().Foreground(c)
		styles[id] = s
		return s
	}

	var b strings.Builder
	for r, row := range grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, id := range row {
			if id == 0 {
				b.WriteString(styleDim.Render(cellEmpty))
				continue
			}
			b.WriteString(styleFor(id).Render(cellFilled))
		}
	}
	return b.String()
}

// rampIndex maps v in [lo, hi] onto [0, n).
func rampIndex(v, lo, hi, n int) int {
	if hi <= lo {
		return n - 1
	}
	i := (v - lo) * (n - 1) / (hi - lo)
	return min(max(i, 0), n-1)
}

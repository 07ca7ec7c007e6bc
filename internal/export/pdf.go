// Package export writes tiling run results to PDF, DXF, Excel and HTML.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/BrickFill/internal/model"
)

// ErrEmptyResult is returned when a result has no surface to draw.
var ErrEmptyResult = errors.New("result has no layout to export")

// brickColor represents an RGB color for a placed brick.
type brickColor struct {
	R, G, B int
}

// brickColors mirrors the discrete palette used by the terminal renderer.
var brickColors = []brickColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// shapeKey identifies a shape independently of brick ids.
func shapeKey(b model.Brick) string {
	return b.WithID(model.NoID).String()
}

// shapeIndex assigns each shape of the run a stable position, used for
// colouring. Shapes that appear only in placements are appended.
func shapeIndex(result model.RunResult) map[string]int {
	idx := make(map[string]int, len(result.Shapes))
	for _, s := range result.Shapes {
		if _, ok := idx[shapeKey(s)]; !ok {
			idx[shapeKey(s)] = len(idx)
		}
	}
	for _, p := range result.Placements {
		if _, ok := idx[shapeKey(p.Brick)]; !ok {
			idx[shapeKey(p.Brick)] = len(idx)
		}
	}
	return idx
}

func checkResult(result model.RunResult) error {
	if result.Width < 1 || result.Height < 1 {
		return ErrEmptyResult
	}
	return nil
}

// ExportPDF generates a PDF document for a tiling run: the best layout drawn
// to scale on the first page, followed by a summary page with the run
// settings, statistics and a QR run label.
func ExportPDF(path string, result model.RunResult) error {
	if err := checkResult(result); err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, result)

	pdf.AddPage()
	if err := renderSummaryPage(pdf, result); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the surface and every placed brick on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, result model.RunResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Run %s: %d x %d surface", result.ShortID(), result.Width, result.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Bricks: %d | Covered: %d of %d cells | Coverage: %.1f%%",
		len(result.Placements), result.CoveredArea, result.TotalArea(), result.Coverage())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	// One grid cell is a square of side scale mm
	scale := math.Min(drawWidth/float64(result.Width), drawHeight/float64(result.Height))
	canvasW := float64(result.Width) * scale
	canvasH := float64(result.Height) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Uncovered cells show through as light grey
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	if scale >= 2 {
		drawCellGrid(pdf, result.Width, result.Height, scale, offsetX, offsetY)
	}

	shapes := shapeIndex(result)
	for _, p := range result.Placements {
		col := brickColors[shapes[shapeKey(p.Brick)]%len(brickColors)]
		pw := float64(p.Cols()) * scale
		ph := float64(p.Rows()) * scale
		px := offsetX + float64(p.Col)*scale
		py := offsetY + float64(p.Row)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Label only if the rectangle is large enough
		if pw > 10 && ph > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			label := shapeKey(p.Brick)
			if w := pdf.GetStringWidth(label); w < pw-2 {
				pdf.SetXY(px+(pw-w)/2, py+ph/2-2)
				pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, result, offsetX, offsetY, canvasW, canvasH)
	drawShapeLegend(pdf, result, offsetY+canvasH+6)
}

// drawCellGrid draws faint lines between grid cells.
func drawCellGrid(pdf *fpdf.Fpdf, cols, rows int, scale, x, y float64) {
	pdf.SetDrawColor(210, 210, 210)
	pdf.SetLineWidth(0.1)
	for c := 1; c < cols; c++ {
		pdf.Line(x+float64(c)*scale, y, x+float64(c)*scale, y+float64(rows)*scale)
	}
	for r := 1; r < rows; r++ {
		pdf.Line(x, y+float64(r)*scale, x+float64(cols)*scale, y+float64(r)*scale)
	}
}

// drawDimensionAnnotations adds width and height labels outside the surface.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, result model.RunResult, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d cells", result.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d cells", result.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawShapeLegend renders one colour swatch per shape with its usage count.
func drawShapeLegend(pdf *fpdf.Fpdf, result model.RunResult, startY float64) {
	if len(result.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Shapes used:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	counts := result.ShapeCounts()
	shapes := shapeIndex(result)
	for _, key := range orderedShapes(shapes) {
		n := counts[key]
		if n == 0 {
			continue
		}
		col := brickColors[shapes[key]%len(brickColors)]
		label := fmt.Sprintf("%s x%d", key, n)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// orderedShapes lists shape keys in colour order.
func orderedShapes(idx map[string]int) []string {
	keys := make([]string, len(idx))
	for k, i := range idx {
		keys[i] = k
	}
	return keys
}

// renderSummaryPage draws the run summary: overall figures, shape usage,
// settings, a sample of the per-generation statistics and the run label.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.RunResult) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Tiling Run Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	full := "no"
	if result.FullCoverage() {
		full = "yes"
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Surface", fmt.Sprintf("%d x %d cells", result.Width, result.Height)},
		{"Covered Area", fmt.Sprintf("%d of %d cells", result.CoveredArea, result.TotalArea())},
		{"Coverage", fmt.Sprintf("%.1f%%", result.Coverage())},
		{"Full Coverage", full},
		{"Bricks Placed", fmt.Sprintf("%d", len(result.Placements))},
		{"Generations Reported", fmt.Sprintf("%d", len(result.Stats))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if err := drawRunLabel(pdf, pageWidth-marginRight-labelWidth, marginTop+18, RunLabelInfo(result)); err != nil {
		return err
	}

	y += 5
	y = drawStatsTable(pdf, result.Stats, y)

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Run Settings", "", 0, "L", false, 0, "")
	y += 9

	s := result.Settings
	settingsItems := []struct {
		label string
		value string
	}{
		{"Draw Mode", s.Mode},
		{"Population", fmt.Sprintf("%d", s.PopulationSize)},
		{"Generations", fmt.Sprintf("%d", s.Generations)},
		{"Mutation Threshold", fmt.Sprintf("%.2f", s.MutationThreshold)},
		{"Seed", fmt.Sprintf("%d", s.Seed)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BrickFill - Genetic Brick Tiling Optimizer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// maxStatsRows caps the statistics table so it fits on the summary page.
const maxStatsRows = 10

// drawStatsTable renders an evenly sampled slice of the generation
// statistics, always including the last generation. It returns the y
// position below the table.
func drawStatsTable(pdf *fpdf.Fpdf, stats []model.GenerationStats, y float64) float64 {
	if len(stats) == 0 {
		return y
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Generation Statistics", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 25, 25, 25, 25, 25}
	headers := []string{"Generation", "Sum", "Average", "Median", "Max", "Min"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, st := range sampleStats(stats, maxStatsRows) {
		rowData := []string{
			fmt.Sprintf("%d", st.Generation),
			fmt.Sprintf("%d", st.Sum),
			fmt.Sprintf("%.1f", st.Average),
			fmt.Sprintf("%.1f", st.Median),
			fmt.Sprintf("%d", st.Max),
			fmt.Sprintf("%d", st.Min),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
	return y
}

// sampleStats picks at most n entries spread evenly over stats, keeping the
// first and last.
func sampleStats(stats []model.GenerationStats, n int) []model.GenerationStats {
	if len(stats) <= n {
		return stats
	}
	out := make([]model.GenerationStats, 0, n)
	step := float64(len(stats)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		out = append(out, stats[int(math.Round(float64(i)*step))])
	}
	return out
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

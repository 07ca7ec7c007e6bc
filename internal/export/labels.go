package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/BrickFill/internal/model"
)

// LabelInfo holds the data encoded into each brick label's QR code.
type LabelInfo struct {
	RunID       string `json:"run"`
	BrickID     int    `json:"brick"`
	Shape       string `json:"shape"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Orientation string `json:"orientation"`
}

// RunLabel is the payload of the QR code printed on the PDF summary page.
type RunLabel struct {
	RunID       string  `json:"run"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	CoveredArea int     `json:"covered"`
	Coverage    float64 `json:"coverage_pct"`
	Bricks      int     `json:"bricks"`
	Seed        int64   `json:"seed"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per placed brick.
// Each label shows the brick's shape and grid position and carries the same
// data as JSON in its QR code.
func ExportLabels(path string, result model.RunResult) error {
	if err := checkResult(result); err != nil {
		return err
	}

	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no bricks placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for brick %d: %w", label.BrickID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// registerQR encodes payload as JSON into a QR code and registers the PNG
// under name.
func registerQR(pdf *fpdf.Fpdf, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	return nil
}

// renderLabel draws a single brick label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	imgName := fmt.Sprintf("qr_%d_%d", info.Row, info.Col)
	if err := registerQR(pdf, imgName, info); err != nil {
		return err
	}
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("Brick #%d", info.BrickID), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, info.Shape+" ("+info.Orientation+")", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Row %d, Col %d", info.Row, info.Col), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, "Run "+shortRun(info.RunID), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// drawRunLabel draws the run summary label with its QR code at (x, y).
func drawRunLabel(pdf *fpdf.Fpdf, x, y float64, info RunLabel) error {
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	if err := registerQR(pdf, "qr_run", info); err != nil {
		return err
	}
	pdf.ImageOptions("qr_run", x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2,
		qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, "Run "+shortRun(info.RunID), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d x %d, %.1f%%", info.Width, info.Height, info.Coverage), "", 1, "L", false, 0, "")
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d bricks, seed %d", info.Bricks, info.Seed), "", 1, "L", false, 0, "")
	return nil
}

func shortRun(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// CollectLabelInfos extracts one label per placement, in placement order.
func CollectLabelInfos(result model.RunResult) []LabelInfo {
	var labels []LabelInfo
	for _, p := range result.Placements {
		labels = append(labels, LabelInfo{
			RunID:       result.ID,
			BrickID:     p.Brick.ID,
			Shape:       shapeKey(p.Brick),
			Row:         p.Row,
			Col:         p.Col,
			Orientation: p.Orientation.String(),
		})
	}
	return labels
}

// RunLabelInfo builds the summary label payload for a run.
func RunLabelInfo(result model.RunResult) RunLabel {
	return RunLabel{
		RunID:       result.ID,
		Width:       result.Width,
		Height:      result.Height,
		CoveredArea: result.CoveredArea,
		Coverage:    result.Coverage(),
		Bricks:      len(result.Placements),
		Seed:        result.Settings.Seed,
	}
}

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BrickFill/internal/model"
)

// Workbook sheet names.
const (
	sheetStats  = "Statistics"
	sheetLayout = "Layout"
	sheetShapes = "Shapes"
)

var statsHeaders = []string{"Generation", "Sum", "Average", "Median", "Max", "Min"}

// ExportStatsExcel writes a workbook with the per-generation statistics, the
// best layout's grid of brick ids and the shape usage counts.
func ExportStatsExcel(path string, result model.RunResult) error {
	if err := checkResult(result); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetStats); err != nil {
		return err
	}
	for _, name := range []string{sheetLayout, sheetShapes} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := writeStatsSheet(f, result.Stats, bold); err != nil {
		return fmt.Errorf("statistics sheet: %w", err)
	}
	if err := writeLayoutSheet(f, result); err != nil {
		return fmt.Errorf("layout sheet: %w", err)
	}
	if err := writeShapesSheet(f, result, bold); err != nil {
		return fmt.Errorf("shapes sheet: %w", err)
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, ref, value)
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		if err := setCell(f, sheet, i+1, 1, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeStatsSheet(f *excelize.File, stats []model.GenerationStats, header int) error {
	if err := writeHeader(f, sheetStats, statsHeaders, header); err != nil {
		return err
	}
	for i, st := range stats {
		row := i + 2
		values := []any{st.Generation, st.Sum, st.Average, st.Median, st.Max, st.Min}
		for j, v := range values {
			if err := setCell(f, sheetStats, j+1, row, v); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(sheetStats, "A", "F", 12)
}

// writeLayoutSheet writes the grid with one cell per surface cell; empty
// cells hold 0.
func writeLayoutSheet(f *excelize.File, result model.RunResult) error {
	for r, row := range result.Grid {
		for c, id := range row {
			if err := setCell(f, sheetLayout, c+1, r+1, id); err != nil {
				return err
			}
		}
	}
	last, err := excelize.ColumnNumberToName(max(result.Width, 1))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheetLayout, "A", last, 4)
}

func writeShapesSheet(f *excelize.File, result model.RunResult, header int) error {
	if err := writeHeader(f, sheetShapes, []string{"Shape", "Area", "Placed", "Cells"}, header); err != nil {
		return err
	}
	counts := result.ShapeCounts()
	areas := make(map[string]int)
	for _, p := range result.Placements {
		areas[shapeKey(p.Brick)] = p.Brick.Area()
	}
	for _, s := range result.Shapes {
		areas[shapeKey(s)] = s.Area()
	}

	for i, key := range orderedShapes(shapeIndex(result)) {
		row := i + 2
		values := []any{key, areas[key], counts[key], areas[key] * counts[key]}
		for j, v := range values {
			if err := setCell(f, sheetShapes, j+1, row, v); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(sheetShapes, "A", "D", 10)
}

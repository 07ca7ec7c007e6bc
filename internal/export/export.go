package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/project"
)

// Writer writes one artifact for a run result to path.
type Writer func(path string, result model.RunResult) error

var writers = map[string]struct {
	suffix string
	write  Writer
}{
	model.ExportPDF:    {".pdf", ExportPDF},
	model.ExportLabels: {"-labels.pdf", ExportLabels},
	model.ExportDXF:    {".dxf", ExportDXF},
	model.ExportXLSX:   {".xlsx", ExportStatsExcel},
	model.ExportHTML:   {"-stats.html", ExportStatsChart},
	model.ExportJSON:   {".json", project.SaveResult},
}

// Path returns the file an export format is written to inside dir. Files are
// named after the run's short id.
func Path(dir, format string, result model.RunResult) (string, error) {
	w, ok := writers[strings.ToLower(format)]
	if !ok {
		return "", fmt.Errorf("%w: unknown export format %q", model.ErrInvalidArgument, format)
	}
	return filepath.Join(dir, "brickfill-"+result.ShortID()+w.suffix), nil
}

// Write exports result in the given format into dir and returns the path of
// the written file.
func Write(dir, format string, result model.RunResult) (string, error) {
	path, err := Path(dir, format, result)
	if err != nil {
		return "", err
	}
	if err := writers[strings.ToLower(format)].write(path, result); err != nil {
		return "", fmt.Errorf("%s export: %w", format, err)
	}
	return path, nil
}

package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BrickFill/internal/model"
)

// ResultVersion is written into every saved result file.
const ResultVersion = "1.0.0"

// resultFile is the on-disk envelope of a saved run.
type resultFile struct {
	Version string          `json:"version"`
	Result  model.RunResult `json:"result"`
}

// SaveResult writes a finished run to a JSON file. The file is an export of
// the outcome; runs never resume from it.
func SaveResult(path string, result model.RunResult) error {
	data, err := json.MarshalIndent(resultFile{Version: ResultVersion, Result: result}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}

// LoadResult reads a result file written by SaveResult and checks that its
// grid matches the recorded surface.
func LoadResult(path string) (model.RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("failed to read result file: %w", err)
	}
	var file resultFile
	if err := json.Unmarshal(data, &file); err != nil {
		return model.RunResult{}, fmt.Errorf("failed to parse result file: %w", err)
	}
	if file.Version == "" {
		return model.RunResult{}, fmt.Errorf("invalid result file: missing version field")
	}

	r := file.Result
	if r.Width < 1 || r.Height < 1 {
		return model.RunResult{}, fmt.Errorf("invalid result file: surface %dx%d", r.Width, r.Height)
	}
	if len(r.Grid) != r.Height {
		return model.RunResult{}, fmt.Errorf("invalid result file: grid has %d rows, want %d", len(r.Grid), r.Height)
	}
	for i, row := range r.Grid {
		if len(row) != r.Width {
			return model.RunResult{}, fmt.Errorf("invalid result file: grid row %d has %d cells, want %d", i, len(row), r.Width)
		}
	}
	if r.Placements == nil {
		r.Placements = []model.Placement{}
	}
	if r.Stats == nil {
		r.Stats = []model.GenerationStats{}
	}
	return r, nil
}

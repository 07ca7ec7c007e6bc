package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BrickFill/internal/model"
)

// DefaultShapeLibraryPath returns ~/.brickfill/shapes.json.
func DefaultShapeLibraryPath() string {
	return filepath.Join(DefaultConfigDir(), "shapes.json")
}

// SaveShapeLibrary writes the library to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveShapeLibrary(path string, lib model.ShapeLibrary) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadShapeLibrary reads the library from the specified JSON file.
// If the file does not exist, it returns the default library and saves it.
func LoadShapeLibrary(path string) (model.ShapeLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lib := model.DefaultShapeLibrary()
			if saveErr := SaveShapeLibrary(path, lib); saveErr != nil {
				return lib, saveErr
			}
			return lib, nil
		}
		return model.ShapeLibrary{}, err
	}
	lib, err := decodeShapeLibrary(data)
	if err != nil {
		return model.ShapeLibrary{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return lib, nil
}

func decodeShapeLibrary(data []byte) (model.ShapeLibrary, error) {
	var lib model.ShapeLibrary
	if err := json.Unmarshal(data, &lib); err != nil {
		return model.ShapeLibrary{}, err
	}
	if lib.Sets == nil {
		lib.Sets = []model.ShapeSet{}
	}
	for i := range lib.Sets {
		if err := lib.Sets[i].Validate(); err != nil {
			return model.ShapeLibrary{}, err
		}
		// Stored shapes are templates, never issued bricks.
		for j := range lib.Sets[i].Shapes {
			lib.Sets[i].Shapes[j].ID = model.NoID
		}
	}
	return lib, nil
}

// ImportShapeLibrary imports shape sets from a user-specified JSON file,
// merging them with the existing library. Duplicate IDs are skipped.
func ImportShapeLibrary(path string, existing model.ShapeLibrary) (model.ShapeLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	imported, err := decodeShapeLibrary(data)
	if err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing.Sets))
	for _, s := range existing.Sets {
		ids[s.ID] = true
	}
	for _, s := range imported.Sets {
		if !ids[s.ID] {
			existing.Sets = append(existing.Sets, s)
			ids[s.ID] = true
		}
	}
	return existing, nil
}

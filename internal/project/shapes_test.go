package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BrickFill/internal/model"
)

func TestLoadShapeLibraryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "shapes.json")

	lib, err := LoadShapeLibrary(path)
	if err != nil {
		t.Fatalf("LoadShapeLibrary failed: %v", err)
	}
	if len(lib.Sets) != len(model.DefaultShapeLibrary().Sets) {
		t.Errorf("expected the default sets, got %d", len(lib.Sets))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected the default library to be saved: %v", err)
	}

	again, err := LoadShapeLibrary(path)
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if again.Sets[0].ID != lib.Sets[0].ID {
		t.Errorf("expected the saved ids to be reused, got %s and %s", again.Sets[0].ID, lib.Sets[0].ID)
	}
}

func TestSaveAndLoadShapeLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.json")
	lib := model.ShapeLibrary{Sets: []model.ShapeSet{
		model.NewShapeSet("bars", []model.Brick{model.MustBrick(3, 1), model.MustBrick(6, 1)}),
	}}

	if err := SaveShapeLibrary(path, lib); err != nil {
		t.Fatalf("SaveShapeLibrary failed: %v", err)
	}
	loaded, err := LoadShapeLibrary(path)
	if err != nil {
		t.Fatalf("LoadShapeLibrary failed: %v", err)
	}
	set := loaded.FindByName("bars")
	if set == nil {
		t.Fatal("expected set 'bars'")
	}
	if len(set.Shapes) != 2 || set.Shapes[1].Width != 6 {
		t.Errorf("unexpected shapes %v", set.Shapes)
	}
	if set.Shapes[0].ID != model.NoID {
		t.Errorf("stored shapes must be untagged, got id %d", set.Shapes[0].ID)
	}
}

func TestLoadShapeLibraryRejectsBadShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.json")
	data := `{"sets":[{"id":"x","name":"broken","shapes":[{"width":0,"height":2}]}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadShapeLibrary(path); err == nil {
		t.Error("expected an error for a zero-width shape")
	}
}

func TestImportShapeLibrary(t *testing.T) {
	dir := t.TempDir()
	existing := model.DefaultShapeLibrary()

	extra := model.NewShapeSet("tiles", []model.Brick{model.MustBrick(2, 2)})
	imported := model.ShapeLibrary{Sets: []model.ShapeSet{existing.Sets[0], extra}}
	path := filepath.Join(dir, "import.json")
	if err := SaveShapeLibrary(path, imported); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportShapeLibrary(path, existing)
	if err != nil {
		t.Fatalf("ImportShapeLibrary failed: %v", err)
	}
	if len(merged.Sets) != len(existing.Sets)+1 {
		t.Errorf("expected one new set, got %d sets", len(merged.Sets))
	}
	if merged.FindByID(extra.ID) == nil {
		t.Error("expected the imported set to be present")
	}
}

func TestImportShapeLibraryMissingFile(t *testing.T) {
	existing := model.DefaultShapeLibrary()
	merged, err := ImportShapeLibrary("/nonexistent/shapes.json", existing)
	if err == nil {
		t.Error("expected an error for a missing file")
	}
	if len(merged.Sets) != len(existing.Sets) {
		t.Error("existing library must be returned unchanged")
	}
}

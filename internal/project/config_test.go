package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BrickFill/internal/model"
)

func TestSaveAndLoadSettingsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := model.DefaultSettings()
	cfg.Width = 40
	cfg.Mode = model.ModeWeighted
	cfg.MutationThreshold = 0.35
	cfg.Exports = []string{model.ExportPDF, model.ExportXLSX}

	if err := SaveSettings(path, cfg); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "mutation_threshold = 0.35") {
		t.Errorf("expected TOML output, got:\n%s", data)
	}

	loaded, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if loaded.Width != 40 {
		t.Errorf("expected Width=40, got %d", loaded.Width)
	}
	if loaded.Mode != model.ModeWeighted {
		t.Errorf("expected weighted mode, got %s", loaded.Mode)
	}
	if len(loaded.Exports) != 2 {
		t.Errorf("expected 2 exports, got %v", loaded.Exports)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("loaded settings must validate: %v", err)
	}
}

func TestSaveAndLoadSettingsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := model.DefaultSettings()
	cfg.Generations = 12
	cfg.Seed = 99

	if err := SaveSettings(path, cfg); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	loaded, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if loaded.Generations != 12 || loaded.Seed != 99 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.toml")

	cfg, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	defaults := model.DefaultSettings()
	if cfg.Width != defaults.Width || cfg.PopulationSize != defaults.PopulationSize {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("width = 10\nheight = 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if cfg.Width != 10 || cfg.Height != 8 {
		t.Errorf("expected 10x8, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Generations != model.DefaultSettings().Generations {
		t.Errorf("expected default generations, got %d", cfg.Generations)
	}
	if cfg.Exports == nil {
		t.Error("Exports must not be nil")
	}
}

func TestLoadSettingsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"bad.toml", "bad.json"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{{not valid"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSettings(path); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("expected config.toml, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".brickfill" {
		t.Errorf("expected parent dir .brickfill, got %s", filepath.Dir(path))
	}
}

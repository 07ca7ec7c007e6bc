// Package project persists run settings, the shape library and finished
// run results under the user's configuration directory.
package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/BrickFill/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.brickfill/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".brickfill")
}

// DefaultConfigPath returns the default path for the settings file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// SaveSettings persists settings to path. Files ending in .json are written
// as indented JSON, everything else as TOML. Missing parent directories are
// created.
func SaveSettings(path string, settings model.RunSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var data []byte
	if isJSON(path) {
		var err error
		data, err = json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return err
		}
	} else {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(settings); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSettings reads settings from path, choosing JSON or TOML by extension.
// If the file does not exist, it returns DefaultSettings with no error. Keys
// absent from the file keep their default values.
func LoadSettings(path string) (model.RunSettings, error) {
	settings := model.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return model.RunSettings{}, err
	}

	if isJSON(path) {
		err = json.Unmarshal(data, &settings)
	} else {
		err = toml.Unmarshal(data, &settings)
	}
	if err != nil {
		return model.RunSettings{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if settings.Exports == nil {
		settings.Exports = []string{}
	}
	return settings, nil
}

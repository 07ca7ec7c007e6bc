package model

import (
	"fmt"
	"strings"
)

// Draw modes accepted in RunSettings.Mode.
const (
	ModeUniform  = "uniform"
	ModeWeighted = "weighted"
)

// Colour styles accepted in RunSettings.Color.
const (
	ColorDiscrete = "discrete"
	ColorGradient = "gradient"
)

// Export formats accepted in RunSettings.Exports.
const (
	ExportPDF    = "pdf"
	ExportLabels = "labels"
	ExportDXF    = "dxf"
	ExportXLSX   = "xlsx"
	ExportHTML   = "html"
	ExportJSON   = "json"
)

// RunSettings holds every knob of one tiling run. It is read from a TOML or
// JSON config file and then overridden by command-line flags.
type RunSettings struct {
	// Problem
	Width      int    `json:"width" toml:"width"`
	Height     int    `json:"height" toml:"height"`
	ShapeCount int    `json:"shape_count" toml:"shape_count"` // -1 selects the default shape set
	MaxRib     int    `json:"max_rib" toml:"max_rib"`         // Longest side of generated shapes
	ShapeSet   string `json:"shape_set" toml:"shape_set"`     // Named set from the shape library
	ShapesFile string `json:"shapes_file" toml:"shapes_file"` // CSV or Excel shape list
	Mode       string `json:"mode" toml:"mode"`               // "uniform" or "weighted"

	// Genetic algorithm
	PopulationSize    int     `json:"population_size" toml:"population_size"`
	Generations       int     `json:"generations" toml:"generations"`
	MutationThreshold float64 `json:"mutation_threshold" toml:"mutation_threshold"`
	Seed              int64   `json:"seed" toml:"seed"` // 0 picks a time-based seed

	// Output
	Color     string   `json:"color" toml:"color"` // "discrete" or "gradient"
	OutputDir string   `json:"output_dir" toml:"output_dir"`
	Exports   []string `json:"exports" toml:"exports"`
	Verbose   bool     `json:"verbose" toml:"verbose"`
}

// DefaultSettings returns the stock problem: a 25x25 surface tiled with the
// default shapes by a population of 100 over 100 generations.
func DefaultSettings() RunSettings {
	return RunSettings{
		Width:             25,
		Height:            25,
		ShapeCount:        -1,
		MaxRib:            4,
		Mode:              ModeUniform,
		PopulationSize:    100,
		Generations:       100,
		MutationThreshold: 0.2,
		Color:             ColorGradient,
		OutputDir:         ".",
		Exports:           []string{},
	}
}

// Validate checks the settings for values no run can use.
func (s RunSettings) Validate() error {
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("%w: surface must be at least 1x1, got %dx%d", ErrInvalidArgument, s.Width, s.Height)
	}
	if s.ShapeCount == 0 || s.ShapeCount < -1 {
		return fmt.Errorf("%w: shape count must be -1 or positive, got %d", ErrInvalidArgument, s.ShapeCount)
	}
	if s.ShapeCount > 0 && s.MaxRib < 1 {
		return fmt.Errorf("%w: max brick side must be positive, got %d", ErrInvalidArgument, s.MaxRib)
	}
	if s.PopulationSize < 1 {
		return fmt.Errorf("%w: population size must be positive, got %d", ErrInvalidArgument, s.PopulationSize)
	}
	if s.Generations < 0 {
		return fmt.Errorf("%w: generations must not be negative, got %d", ErrInvalidArgument, s.Generations)
	}
	if s.MutationThreshold < 0 || s.MutationThreshold > 1 {
		return fmt.Errorf("%w: mutation threshold must be in [0, 1], got %g", ErrInvalidArgument, s.MutationThreshold)
	}
	switch s.Mode {
	case ModeUniform, ModeWeighted:
	default:
		return fmt.Errorf("%w: unknown draw mode %q", ErrInvalidArgument, s.Mode)
	}
	switch s.Color {
	case ColorDiscrete, ColorGradient:
	default:
		return fmt.Errorf("%w: unknown colour style %q", ErrInvalidArgument, s.Color)
	}
	for _, e := range s.Exports {
		switch strings.ToLower(e) {
		case ExportPDF, ExportLabels, ExportDXF, ExportXLSX, ExportHTML, ExportJSON:
		default:
			return fmt.Errorf("%w: unknown export format %q", ErrInvalidArgument, e)
		}
	}
	return nil
}

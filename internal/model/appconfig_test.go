package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()
	assert.NoError(t, s.Validate())

	if s.Width != 25 || s.Height != 25 {
		t.Errorf("expected 25x25 default surface, got %dx%d", s.Width, s.Height)
	}
	if s.PopulationSize != 100 || s.Generations != 100 {
		t.Errorf("expected population 100 and 100 generations, got %d and %d", s.PopulationSize, s.Generations)
	}
	if s.MutationThreshold != 0.2 {
		t.Errorf("expected mutation threshold 0.2, got %g", s.MutationThreshold)
	}
	if s.ShapeCount != -1 {
		t.Errorf("expected default shape count -1, got %d", s.ShapeCount)
	}
	if s.Exports == nil {
		t.Error("Exports should not be nil")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RunSettings)
	}{
		{"zero width", func(s *RunSettings) { s.Width = 0 }},
		{"negative height", func(s *RunSettings) { s.Height = -3 }},
		{"zero shape count", func(s *RunSettings) { s.ShapeCount = 0 }},
		{"shape count below -1", func(s *RunSettings) { s.ShapeCount = -2 }},
		{"random shapes without rib", func(s *RunSettings) { s.ShapeCount = 3; s.MaxRib = 0 }},
		{"empty population", func(s *RunSettings) { s.PopulationSize = 0 }},
		{"negative generations", func(s *RunSettings) { s.Generations = -1 }},
		{"threshold above one", func(s *RunSettings) { s.MutationThreshold = 1.5 }},
		{"negative threshold", func(s *RunSettings) { s.MutationThreshold = -0.1 }},
		{"unknown mode", func(s *RunSettings) { s.Mode = "lottery" }},
		{"unknown colour", func(s *RunSettings) { s.Color = "rainbow" }},
		{"unknown export", func(s *RunSettings) { s.Exports = []string{"pdf", "svg"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidArgument)
		})
	}
}

func TestSettingsValidateAcceptsExportCase(t *testing.T) {
	s := DefaultSettings()
	s.Exports = []string{"PDF", "xlsx", "Json"}
	assert.NoError(t, s.Validate())
}

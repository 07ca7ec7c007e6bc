package cli

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BrickFill/internal/importer"
	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/project"
)

// problemFlags holds the flags shared by every command that sets up a run.
// Each value overrides the config file only when the flag was given.
type problemFlags struct {
	config      string
	library     string
	width       int
	height      int
	typesNum    int
	maxBrick    int
	mode        string
	shapesFile  string
	shapeSet    string
	population  int
	generations int
	mutation    float64
	seed        int64
}

func (f *problemFlags) bind(cmd *cobra.Command) {
	d := model.DefaultSettings()
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", project.DefaultConfigPath(), "settings file (TOML or JSON)")
	fl.StringVar(&f.library, "library", project.DefaultShapeLibraryPath(), "shape library file")
	fl.IntVarP(&f.width, "width", "W", d.Width, "surface width in cells")
	fl.IntVarP(&f.height, "height", "H", d.Height, "surface height in cells")
	fl.IntVarP(&f.typesNum, "types-num", "t", d.ShapeCount, "number of random brick shapes (-1 uses the default set)")
	fl.IntVarP(&f.maxBrick, "max-brick", "r", d.MaxRib, "longest side of a random brick shape")
	fl.StringVar(&f.mode, "mode", d.Mode, "brick draw mode: uniform, weighted")
	fl.StringVar(&f.shapesFile, "shapes", "", "import shapes from a CSV, Excel or DXF file")
	fl.StringVar(&f.shapeSet, "shape-set", "", "use a named set from the shape library")
	fl.IntVarP(&f.population, "population", "p", d.PopulationSize, "population size")
	fl.IntVarP(&f.generations, "generations", "g", d.Generations, "number of generations")
	fl.Float64VarP(&f.mutation, "mutation", "m", d.MutationThreshold, "mutation threshold in [0, 1]")
	fl.Int64Var(&f.seed, "seed", d.Seed, "random seed (0 picks one from the clock)")
}

// apply copies every flag the user set onto s.
func (f *problemFlags) apply(cmd *cobra.Command, s *model.RunSettings) {
	fl := cmd.Flags()
	if fl.Changed("width") {
		s.Width = f.width
	}
	if fl.Changed("height") {
		s.Height = f.height
	}
	if fl.Changed("types-num") {
		s.ShapeCount = f.typesNum
	}
	if fl.Changed("max-brick") {
		s.MaxRib = f.maxBrick
	}
	if fl.Changed("mode") {
		s.Mode = strings.ToLower(f.mode)
	}
	if fl.Changed("shapes") {
		s.ShapesFile = f.shapesFile
	}
	if fl.Changed("shape-set") {
		s.ShapeSet = f.shapeSet
	}
	if fl.Changed("population") {
		s.PopulationSize = f.population
	}
	if fl.Changed("generations") {
		s.Generations = f.generations
	}
	if fl.Changed("mutation") {
		s.MutationThreshold = f.mutation
	}
	if fl.Changed("seed") {
		s.Seed = f.seed
	}
}

// settings loads the config file, applies the flags and validates the
// result. A zero seed is replaced by a clock seed so the run can be
// reproduced from its saved settings.
func (f *problemFlags) settings(cmd *cobra.Command) (model.RunSettings, error) {
	s, err := project.LoadSettings(f.config)
	if err != nil {
		return model.RunSettings{}, err
	}
	f.apply(cmd, &s)
	if err := s.Validate(); err != nil {
		return model.RunSettings{}, err
	}
	if s.Seed == 0 {
		s.Seed = time.Now().UnixNano()
	}
	return s, nil
}

// resolveShapes picks the run's shapes. A shapes file wins over a library
// set, which wins over random generation; a shape count of -1 selects the
// default set.
func resolveShapes(s model.RunSettings, libraryPath string, logger *log.Logger) ([]model.Brick, error) {
	switch {
	case s.ShapesFile != "":
		res := importer.ImportFile(s.ShapesFile)
		for _, w := range res.Warnings {
			logger.Warn(w, "file", s.ShapesFile)
		}
		if len(res.Errors) > 0 {
			return nil, fmt.Errorf("importing %s: %w", s.ShapesFile, errors.New(strings.Join(res.Errors, "; ")))
		}
		if len(res.Shapes) == 0 {
			return nil, fmt.Errorf("%w: %s contains no shapes", model.ErrInvalidArgument, s.ShapesFile)
		}
		return res.Shapes, nil

	case s.ShapeSet != "":
		lib, err := project.LoadShapeLibrary(libraryPath)
		if err != nil {
			return nil, err
		}
		set := lib.FindByName(s.ShapeSet)
		if set == nil {
			return nil, fmt.Errorf("%w: no shape set %q (have %s)", model.ErrInvalidArgument, s.ShapeSet, strings.Join(lib.Names(), ", "))
		}
		return set.Shapes, nil

	case s.ShapeCount == -1:
		return model.DefaultShapes(), nil

	default:
		return model.RandomShapes(s.ShapeCount, s.MaxRib, rand.New(rand.NewSource(s.Seed)))
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/BrickFill/internal/engine"
	"github.com/piwi3910/BrickFill/internal/export"
	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/report"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

// outputFlags controls how a result is shown and where it is written.
type outputFlags struct {
	color   string
	outDir  string
	exports string
	quiet   bool
}

func (f *outputFlags) bind(cmd *cobra.Command) {
	d := model.DefaultSettings()
	fl := cmd.Flags()
	fl.StringVar(&f.color, "color", d.Color, "grid colour style: discrete, gradient")
	fl.StringVarP(&f.outDir, "out", "o", d.OutputDir, "directory for exported files")
	fl.StringVarP(&f.exports, "export", "e", "", "export formats: pdf, labels, dxf, xlsx, html, json (comma-separated)")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "do not log every generation")
}

func (f *outputFlags) apply(cmd *cobra.Command, s *model.RunSettings) {
	fl := cmd.Flags()
	if fl.Changed("color") {
		s.Color = strings.ToLower(f.color)
	}
	if fl.Changed("out") {
		s.OutputDir = f.outDir
	}
	if fl.Changed("export") {
		s.Exports = parseFormats(f.exports)
	}
}

// parseFormats splits a comma-separated format list, dropping blanks.
func parseFormats(s string) []string {
	formats := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			formats = append(formats, part)
		}
	}
	return formats
}

// uniqueFormats lowercases formats and drops repeats, keeping first order.
func uniqueFormats(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(f)
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func newRunCmd() *cobra.Command {
	var problem problemFlags
	var output outputFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve a brick tiling for a surface",
		Long: `Run the genetic optimizer on a width x height surface. Every generation is
logged with its best and average coverage, the best layout is drawn in the
terminal and the requested artifacts are written to the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := problem.settings(cmd)
			if err != nil {
				return err
			}
			output.apply(cmd, &s)
			if err := s.Validate(); err != nil {
				return err
			}
			return runTiling(cmd.Context(), cmd.OutOrStdout(), s, problem.library, output.quiet)
		},
	}

	problem.bind(cmd)
	output.bind(cmd)
	return cmd
}

// buildDriver sets up the inventory and the genetic driver for s.
func buildDriver(s model.RunSettings, shapes []model.Brick, logger *log.Logger) (*engine.Genetic, error) {
	mode, err := tiling.ParseMode(s.Mode)
	if err != nil {
		return nil, err
	}
	inv, err := tiling.NewCollection(s.Width*s.Height, shapes, mode, rand.New(rand.NewSource(s.Seed)), tiling.NewIDGenerator())
	if err != nil {
		return nil, err
	}
	ga, err := engine.New(s.Width, s.Height, inv, geneticConfig(s))
	if err != nil {
		return nil, err
	}
	ga.SetLogger(logger)
	return ga, nil
}

func geneticConfig(s model.RunSettings) engine.GeneticConfig {
	cfg := engine.DefaultGeneticConfig()
	cfg.PopulationSize = s.PopulationSize
	cfg.Generations = s.Generations
	cfg.MutationThreshold = s.MutationThreshold
	cfg.Seed = s.Seed
	return cfg
}

func runTiling(ctx context.Context, w io.Writer, s model.RunSettings, libraryPath string, quiet bool) error {
	logger := loggerFromContext(ctx)
	if s.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	shapes, err := resolveShapes(s, libraryPath, logger)
	if err != nil {
		return err
	}
	logger.Info("Starting run",
		"surface", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"shapes", len(shapes),
		"mode", s.Mode,
		"population", s.PopulationSize,
		"generations", s.Generations,
		"seed", s.Seed)

	ga, err := buildDriver(s, shapes, logger)
	if err != nil {
		return err
	}

	area := s.Width * s.Height
	logGeneration := func(gen int, pop engine.Population) {
		if quiet {
			return
		}
		st := model.ComputeStats(gen, pop.Covered())
		logger.Info("Generation",
			"gen", gen,
			"best", fmt.Sprintf("%.1f%%", model.CoveragePercent(st.Max, area)),
			"avg", fmt.Sprintf("%.1f%%", st.Average/float64(area)*100))
	}

	collector := report.NewCollector()
	prog := newProgress(logger)
	pop, evolveErr := ga.Evolve(ctx, s.Generations, collector.Chain(logGeneration))
	if evolveErr != nil && !errors.Is(evolveErr, context.Canceled) {
		return evolveErr
	}

	best, bestGen := collector.Best()
	if b := pop.Best(); b != nil && (best == nil || b.CoveredArea() > best.CoveredArea()) {
		best = b
	}
	prog.done("Evolution finished", "generations", ga.GenerationsRun(), "best_generation", bestGen)

	result := report.BuildResult(s, shapes, best, collector.Stats())
	printResult(w, result)

	if evolveErr != nil {
		// Interrupted: show what was found but skip the artifacts
		return evolveErr
	}
	return writeExports(ctx, w, s.OutputDir, s.Exports, result)
}

// printResult prints the run summary followed by the rendered grid.
func printResult(w io.Writer, r model.RunResult) {
	printTitle(w, "Run %s", r.ShortID())
	printKeyValue(w, "Surface", fmt.Sprintf("%d x %d", r.Width, r.Height))
	printKeyValue(w, "Covered", fmt.Sprintf("%d / %d cells (%.1f%%)", r.CoveredArea, r.TotalArea(), r.Coverage()))
	printKeyValue(w, "Bricks", fmt.Sprintf("%d", len(r.Placements)))
	if len(r.Stats) > 0 {
		printKeyValue(w, "Generations", fmt.Sprintf("%d", r.Stats[len(r.Stats)-1].Generation))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderGrid(r.Grid, r.Placements, r.Settings.Color))
	fmt.Fprintln(w)
	if r.FullCoverage() {
		printSuccess(w, "Full coverage")
	}
}

// writeExports writes every requested format concurrently and lists the
// written files in request order.
func writeExports(ctx context.Context, w io.Writer, dir string, formats []string, result model.RunResult) error {
	formats = uniqueFormats(formats)
	if len(formats) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := export.Write(dir, format, result)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	loggerFromContext(ctx).Debug("Exports written", "count", len(paths), "dir", dir)
	printSuccess(w, "Exported %d file(s)", len(paths))
	for _, p := range paths {
		printFile(w, p)
	}
	return nil
}

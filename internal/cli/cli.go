// Package cli implements the brickfill command-line interface.
//
// The commands are:
//   - run: evolve a tiling and export the best layout
//   - shapes: list the shapes a run would use and manage the shape library
//   - show: render a saved result
//   - compare: run the optimizer under several scenarios side by side
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // set through ldflags
	commit  string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// NewRootCommand builds the command tree. The logger is attached to the
// command context in PersistentPreRun and writes to the command's stderr.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "brickfill",
		Short:        "BrickFill tiles a rectangular surface with bricks",
		Long:         `BrickFill searches for a layout of rectangular bricks that covers as much of a width x height grid as possible, using a genetic algorithm with rectangular-window crossover and mutation.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("brickfill %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newShapesCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newCompareCmd())

	return root
}

// Execute runs the brickfill CLI with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

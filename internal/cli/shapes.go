package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BrickFill/internal/model"
	"github.com/piwi3910/BrickFill/internal/project"
)

func newShapesCmd() *cobra.Command {
	var problem problemFlags

	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "List the brick shapes a run would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := problem.settings(cmd)
			if err != nil {
				return err
			}
			shapes, err := resolveShapes(s, problem.library, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			printShapes(cmd.OutOrStdout(), shapes)
			return nil
		},
	}
	problem.bind(cmd)

	cmd.AddCommand(newShapeSetsCmd(), newShapeImportCmd())
	return cmd
}

func printShapes(w io.Writer, shapes []model.Brick) {
	rows := make([][]string, len(shapes))
	for i, s := range shapes {
		rows[i] = []string{s.WithID(model.NoID).String(), fmt.Sprintf("%d", s.Width), fmt.Sprintf("%d", s.Height), fmt.Sprintf("%d", s.Area())}
	}
	printTable(w, []string{"Shape", "Width", "Height", "Area"}, rows)
}

func newShapeSetsCmd() *cobra.Command {
	var library string
	cmd := &cobra.Command{
		Use:   "sets",
		Short: "List the sets in the shape library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := project.LoadShapeLibrary(library)
			if err != nil {
				return err
			}
			rows := make([][]string, len(lib.Sets))
			for i, set := range lib.Sets {
				rows[i] = []string{set.Name, set.ID, fmt.Sprintf("%d", len(set.Shapes))}
			}
			printTable(cmd.OutOrStdout(), []string{"Name", "ID", "Shapes"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&library, "library", project.DefaultShapeLibraryPath(), "shape library file")
	return cmd
}

func newShapeImportCmd() *cobra.Command {
	var library string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge the sets of another library file into the shape library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := project.LoadShapeLibrary(library)
			if err != nil {
				return err
			}
			before := len(lib.Sets)
			lib, err = project.ImportShapeLibrary(args[0], lib)
			if err != nil {
				return err
			}
			if err := project.SaveShapeLibrary(library, lib); err != nil {
				return err
			}
			added := len(lib.Sets) - before
			if added == 0 {
				printWarning(cmd.OutOrStdout(), "No new shape sets in %s", args[0])
				return nil
			}
			printSuccess(cmd.OutOrStdout(), "Imported %d shape set(s)", added)
			return nil
		},
	}
	cmd.Flags().StringVar(&library, "library", project.DefaultShapeLibraryPath(), "shape library file")
	return cmd
}

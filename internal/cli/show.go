package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/BrickFill/internal/project"
)

func newShowCmd() *cobra.Command {
	var output outputFlags

	cmd := &cobra.Command{
		Use:   "show RESULT.json",
		Short: "Render a saved run result and optionally export it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := project.LoadResult(args[0])
			if err != nil {
				return err
			}
			output.apply(cmd, &result.Settings)
			if err := result.Settings.Validate(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printResult(w, result)
			if !cmd.Flags().Changed("export") {
				return nil
			}
			return writeExports(cmd.Context(), w, result.Settings.OutputDir, result.Settings.Exports, result)
		},
	}
	output.bind(cmd)
	return cmd
}

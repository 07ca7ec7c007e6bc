package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BrickFill/internal/engine"
	"github.com/piwi3910/BrickFill/internal/tiling"
)

func newCompareCmd() *cobra.Command {
	var problem problemFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare draw modes and mutation thresholds on the same problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			s, err := problem.settings(cmd)
			if err != nil {
				return err
			}
			shapes, err := resolveShapes(s, problem.library, logger)
			if err != nil {
				return err
			}
			mode, err := tiling.ParseMode(s.Mode)
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(mode, geneticConfig(s))
			logger.Info("Comparing scenarios", "count", len(scenarios), "surface", fmt.Sprintf("%dx%d", s.Width, s.Height))
			prog := newProgress(logger)
			results, err := engine.CompareScenarios(ctx, s.Width, s.Height, shapes, scenarios)
			if err != nil {
				return err
			}
			prog.done("Comparison finished")

			rows := make([][]string, len(results))
			for i, r := range results {
				full := ""
				if r.FullCoverage {
					full = "yes"
				}
				rows[i] = []string{
					r.Scenario.Name,
					r.Scenario.Mode.String(),
					fmt.Sprintf("%.2f", r.Scenario.Config.MutationThreshold),
					fmt.Sprintf("%d", r.CoveredArea),
					fmt.Sprintf("%.1f%%", r.Coverage),
					fmt.Sprintf("%d", r.GenerationsRun),
					full,
				}
			}
			printTable(cmd.OutOrStdout(), []string{"Scenario", "Mode", "Mutation", "Covered", "Coverage", "Generations", "Full"}, rows)
			return nil
		},
	}
	problem.bind(cmd)
	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anders/scenarist/internal/engine"
	"github.com/anders/scenarist/internal/models"
)

// NewPlanCommand creates and returns the plan subcommand
func NewPlanCommand() *cobra.Command {
	opts := engine.DefaultPlanOptions()
	var strategy string

	cmd := &cobra.Command{
		Use:   "plan <tag>...",
		Short: "Generate a test plan for a set of scenarios",
		Long: `Aggregate the named scenarios into a test plan. The strategy decides
how durations combine: sequential sums every flow, parallel takes the
longest, optimized groups scenarios with disjoint dependency sets to
run together.

Every tag must resolve; a single unknown tag fails the whole plan.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseStrategy(strategy)
			if err != nil {
				return err
			}
			opts.Strategy = s

			app, err := newAppContext(cmd, false)
			if err != nil {
				return err
			}
			return renderEnvelope(cmd, app.engine().GeneratePlan(args, opts))
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&strategy, "strategy", string(models.StrategyOptimized), "execution strategy (sequential, parallel, optimized)")
	cmd.Flags().BoolVar(&opts.IncludeSetupTeardown, "setup-teardown", opts.IncludeSetupTeardown, "include shared setup and teardown entries")

	return cmd
}

func parseStrategy(s string) (models.ExecutionStrategy, error) {
	switch models.ExecutionStrategy(s) {
	case models.StrategySequential, models.StrategyParallel, models.StrategyOptimized:
		return models.ExecutionStrategy(s), nil
	}
	return "", fmt.Errorf("invalid strategy %q: must be sequential, parallel, or optimized", s)
}

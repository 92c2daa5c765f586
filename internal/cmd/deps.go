package cmd

import (
	"github.com/spf13/cobra"

	"github.com/anders/scenarist/internal/engine"
)

// NewDepsCommand creates and returns the deps subcommand
func NewDepsCommand() *cobra.Command {
	opts := engine.DefaultDepsOptions()

	cmd := &cobra.Command{
		Use:   "deps <tag>",
		Short: "Analyze the dependencies of a scenario",
		Long: `Derive the API, test data, and automation component dependencies of
the scenario from its text. The analysis is heuristic: it reports what
the scenario says it needs, not what any backend exposes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, false)
			if err != nil {
				return err
			}
			return renderEnvelope(cmd, app.engine().AnalyzeDependencies(args[0], opts))
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&opts.IncludeAPICallsFlow, "api-calls", opts.IncludeAPICallsFlow, "include API dependencies")
	cmd.Flags().BoolVar(&opts.IncludeDataRequirements, "data-requirements", opts.IncludeDataRequirements, "include test data dependencies")

	return cmd
}

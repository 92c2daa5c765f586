package cmd

import (
	"github.com/spf13/cobra"

	"github.com/anders/scenarist/internal/engine"
)

// NewFetchCommand creates and returns the fetch subcommand
func NewFetchCommand() *cobra.Command {
	opts := engine.DefaultFetchOptions()

	cmd := &cobra.Command{
		Use:   "fetch <tag>",
		Short: "Fetch the scenario identified by a tag",
		Long: `Locate the feature file containing the tag, extract the enclosing
scenario block, and print the structured scenario: steps, bound example
data, raw block text, and metadata.

The tag is normalized before lookup: "ntc-123" and "NTC-123" both
resolve @NTC-123.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, false)
			if err != nil {
				return err
			}
			return renderEnvelope(cmd, app.engine().FetchScenario(args[0], opts))
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&opts.IncludeRelatedScenarios, "related", opts.IncludeRelatedScenarios, "include other tags found in the same file")
	cmd.Flags().BoolVar(&opts.IncludePageObjects, "page-objects", opts.IncludePageObjects, "include synthesized page object artifacts")
	cmd.Flags().BoolVar(&opts.IncludeStepDefinitions, "step-definitions", opts.IncludeStepDefinitions, "include synthesized step definition artifacts")

	return cmd
}

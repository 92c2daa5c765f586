package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anders/scenarist/internal/deps"
	"github.com/anders/scenarist/internal/engine"
	"github.com/anders/scenarist/internal/locator"
	"github.com/anders/scenarist/internal/plan"
)

// NewGapsCommand creates and returns the gaps subcommand
func NewGapsCommand() *cobra.Command {
	opts := engine.DefaultGapsOptions()

	cmd := &cobra.Command{
		Use:   "gaps <tag>",
		Short: "Report missing automation artifacts for a scenario",
		Long: `Diff the scenario's component dependencies against the artifact
index and report missing page objects, missing step definitions, and
files that exist but lack required members.

Run "scenarist index rebuild" first to populate the index from the
automation sources.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return renderEnvelope(cmd, app.engine().AnalyzeGaps(cmd.Context(), args[0], opts))
			}

			sc, err := locator.Locate(app.provider, args[0])
			if err != nil {
				return err
			}
			d := deps.Analyze(sc, deps.DefaultOptions())
			report, err := plan.AnalyzeGaps(cmd.Context(), sc, d, app.store, plan.GapOptions{
				CheckPageObjects:     opts.CheckPageObjects,
				CheckStepDefinitions: opts.CheckStepDefinitions,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !report.HasGaps() {
				fmt.Fprintf(out, "✓ No automation gaps for %s\n", report.Tag)
				return nil
			}

			table := newTable(out, []string{"Kind", "Artifact"})
			for _, name := range report.MissingPageObjects {
				table.Append([]string{"missing page object", name})
			}
			for _, name := range report.MissingStepDefinitions {
				table.Append([]string{"missing step definition", name})
			}
			for _, desc := range report.IncompleteImplementations {
				table.Append([]string{"incomplete", desc})
			}
			table.Render()
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&opts.CheckPageObjects, "page-objects", opts.CheckPageObjects, "check page object coverage")
	cmd.Flags().BoolVar(&opts.CheckStepDefinitions, "step-definitions", opts.CheckStepDefinitions, "check step definition coverage")

	return cmd
}

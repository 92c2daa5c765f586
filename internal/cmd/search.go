package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anders/scenarist/internal/engine"
	"github.com/anders/scenarist/internal/search"
)

// NewSearchCommand creates and returns the search subcommand
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the scenario corpus",
		Long: `Search the feature specification corpus, either by structured
criteria over scenario blocks or by free-text relevance over whole
files.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newSearchScenariosCommand())
	cmd.AddCommand(newSearchRelevantCommand())

	return cmd
}

func newSearchScenariosCommand() *cobra.Command {
	opts := engine.DefaultSearchOptions()
	var criteria search.Criteria
	var exampleData []string

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Structured search over scenario blocks",
		Long: `Match scenario blocks against structured criteria. A block matches
when any provided criterion matches a line inside it; results come back
in file-then-position order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			criteria.ExampleData, err = parseKeyValues(exampleData)
			if err != nil {
				return err
			}

			app, err := newAppContext(cmd, false)
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return renderEnvelope(cmd, app.engine().SearchScenarios(criteria, opts))
			}

			if criteria.IsZero() {
				return fmt.Errorf("no search criteria provided")
			}
			results, err := search.Structured(app.provider, criteria, opts.Limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No matching scenarios found.")
				return nil
			}
			table := newTable(out, []string{"File", "Scenario", "Matched"})
			for _, r := range results {
				table.Append([]string{r.File, r.ScenarioHeader, strings.Join(r.MatchedContent, "; ")})
			}
			table.Render()
			fmt.Fprintf(out, "\n%d result(s)\n", len(results))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&criteria.FeatureName, "feature", "", "match against the file's feature name")
	cmd.Flags().StringSliceVar(&criteria.Tags, "tag", nil, "match scenario tags (repeatable)")
	cmd.Flags().StringVar(&criteria.StepContains, "step", "", "match steps containing this text")
	cmd.Flags().StringSliceVar(&exampleData, "example", nil, "match example data as column=value (repeatable)")
	cmd.Flags().IntVar(&opts.Limit, "limit", opts.Limit, "maximum number of results")

	return cmd
}

func newSearchRelevantCommand() *cobra.Command {
	opts := engine.DefaultRelevanceOptions()

	cmd := &cobra.Command{
		Use:   "relevant <query>",
		Short: "Rank corpus files against a free-text query",
		Long: `Score every candidate file against the query with a deterministic
term-frequency heuristic and return the best matches with a snippet
each. No model call is involved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, false)
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return renderEnvelope(cmd, app.engine().SearchRelevant(args[0], opts))
			}

			results, err := search.Relevance(app.provider, args[0], opts.FileTypes, opts.Limit, opts.MinScore)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No relevant files found.")
				return nil
			}
			table := newTable(out, []string{"File", "Score", "Snippet"})
			for _, r := range results {
				table.Append([]string{r.File, fmt.Sprintf("%.2f", r.Score), r.Snippet})
			}
			table.Render()
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringSliceVar(&opts.FileTypes, "type", nil, "restrict to file extensions (repeatable)")
	cmd.Flags().IntVar(&opts.Limit, "limit", opts.Limit, "maximum number of results")
	cmd.Flags().Float64Var(&opts.MinScore, "min-score", opts.MinScore, "drop results scoring below this")

	return cmd
}

// parseKeyValues parses repeated column=value flags into a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		column, value, found := strings.Cut(pair, "=")
		if !found || column == "" {
			return nil, fmt.Errorf("invalid example criterion %q: expected column=value", pair)
		}
		m[column] = value
	}
	return m, nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anders/scenarist/internal/index"
)

// NewIndexCommand creates and returns the index subcommand
func NewIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "index",
		Short:        "Manage the automation artifact index",
		SilenceUsage: true,
	}

	cmd.AddCommand(newIndexRebuildCommand())
	cmd.AddCommand(newIndexStatsCommand())

	return cmd
}

func newIndexRebuildCommand() *cobra.Command {
	var automationDir string

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the artifact index from the automation sources",
		Long: `Scan the automation directory for page object and step definition
sources, extract their methods and step patterns, and replace the
artifact index contents atomically. A file lock serializes concurrent
rebuilds against the same index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()

			root := automationDir
			if root == "" {
				root = app.cfg.AutomationDir
			}

			app.log.Info("rebuilding artifact index from %s", root)
			count, err := app.store.Rebuild(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("failed to rebuild index: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Indexed %d artifact(s) from %s\n", count, root)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&automationDir, "automation-dir", "", "override the automation sources directory")

	return cmd
}

func newIndexStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show artifact counts per kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()

			kinds := []string{
				index.KindPageObjectFile,
				index.KindPageObjectMethod,
				index.KindStepDefinitionFile,
				index.KindStepPattern,
			}
			table := newTable(cmd.OutOrStdout(), []string{"Kind", "Count"})
			for _, kind := range kinds {
				count, err := app.store.Count(cmd.Context(), kind)
				if err != nil {
					return fmt.Errorf("failed to count %s artifacts: %w", kind, err)
				}
				table.Append([]string{kind, fmt.Sprintf("%d", count)})
			}
			table.Render()
			return nil
		},
		SilenceUsage: true,
	}
}

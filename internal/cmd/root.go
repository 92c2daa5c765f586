// Package cmd implements the scenarist command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anders/scenarist/internal/config"
	"github.com/anders/scenarist/internal/corpus"
	"github.com/anders/scenarist/internal/engine"
	"github.com/anders/scenarist/internal/index"
	"github.com/anders/scenarist/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for scenarist
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarist",
		Short: "Scenario intelligence over tagged feature specifications",
		Long: `Scenarist parses Gherkin-style feature specifications tagged with
@NTC identifiers and derives execution flows, dependency reports,
automation gap diagnostics, and test plans from them.

It works entirely from the specification text: no app, device, or
backend is contacted.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", config.DefaultConfigFile, "config file path")
	cmd.PersistentFlags().String("features-dir", "", "override the features directory")
	cmd.PersistentFlags().String("log-level", "", "override the log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().Bool("json", false, "print the raw response envelope as JSON")

	// Add subcommands
	cmd.AddCommand(NewFetchCommand())
	cmd.AddCommand(NewFlowCommand())
	cmd.AddCommand(NewDepsCommand())
	cmd.AddCommand(NewSearchCommand())
	cmd.AddCommand(NewPlanCommand())
	cmd.AddCommand(NewGapsCommand())
	cmd.AddCommand(NewIndexCommand())

	return cmd
}

// appContext bundles the collaborators a subcommand needs, built from
// the resolved configuration.
type appContext struct {
	cfg      *config.Config
	log      *logger.ConsoleLogger
	provider *corpus.Provider
	store    *index.Store
}

// newAppContext resolves config and flags into a ready app context.
// The artifact index is opened only when withIndex is set; callers that
// opened it must Close the context.
func newAppContext(cmd *cobra.Command, withIndex bool) (*appContext, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("features-dir"); dir != "" {
		cfg.FeaturesDir = dir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	log := logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)

	provider, err := corpus.NewProvider(cfg.FeaturesDir, corpus.Options{
		Extensions:    cfg.FileExtensions,
		ExcludeDirs:   cfg.ExcludeDirs,
		CacheCapacity: cfg.CacheCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open features directory: %w", err)
	}

	app := &appContext{cfg: cfg, log: log, provider: provider}
	if withIndex {
		store, err := index.NewStore(cfg.IndexDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open artifact index: %w", err)
		}
		app.store = store
	}
	return app, nil
}

// engine builds the tool surface over this context's collaborators.
func (a *appContext) engine() *engine.Engine {
	return engine.New(a.provider, a.store, a.log)
}

// Close releases the artifact index if it was opened.
func (a *appContext) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

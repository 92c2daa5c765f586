package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anders/scenarist/internal/engine"
	"github.com/anders/scenarist/internal/models"
)

// NewFlowCommand creates and returns the flow subcommand
func NewFlowCommand() *cobra.Command {
	opts := engine.DefaultFlowOptions()
	var platform, detail string

	cmd := &cobra.Command{
		Use:   "flow <tag>",
		Short: "Generate the execution flow for a scenario",
		Long: `Synthesize a platform-targeted execution plan from the scenario:
pre-conditions, numbered main flow steps with per-platform automation
stubs, assertions, error handling, post-conditions, and a duration
estimate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePlatform(platform)
			if err != nil {
				return err
			}
			d, err := parseDetail(detail)
			if err != nil {
				return err
			}
			opts.Platform = p
			opts.DetailLevel = d

			app, err := newAppContext(cmd, false)
			if err != nil {
				return err
			}
			return renderEnvelope(cmd, app.engine().GenerateFlow(args[0], opts))
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&platform, "platform", string(models.PlatformBoth), "target platform (android, ios, both)")
	cmd.Flags().StringVar(&detail, "detail", string(models.DetailDetailed), "detail level (basic, detailed, comprehensive)")
	cmd.Flags().BoolVar(&opts.IncludeAssertions, "assertions", opts.IncludeAssertions, "include the assertion list")
	cmd.Flags().BoolVar(&opts.IncludeErrorHandling, "error-handling", opts.IncludeErrorHandling, "include the error handling catalog")

	return cmd
}

func parsePlatform(s string) (models.Platform, error) {
	switch strings.ToLower(s) {
	case "android":
		return models.PlatformAndroid, nil
	case "ios":
		return models.PlatformIOS, nil
	case "both":
		return models.PlatformBoth, nil
	}
	return "", fmt.Errorf("invalid platform %q: must be android, ios, or both", s)
}

func parseDetail(s string) (models.DetailLevel, error) {
	switch models.DetailLevel(strings.ToLower(s)) {
	case models.DetailBasic, models.DetailDetailed, models.DetailComprehensive:
		return models.DetailLevel(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("invalid detail level %q: must be basic, detailed, or comprehensive", s)
}

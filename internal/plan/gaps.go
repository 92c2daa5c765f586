// Package plan composes scenarios into test plans and reports missing
// automation artifacts. Gap analysis is a diagnostic: it diffs what a
// scenario's dependency report demands against the artifact index, it
// does not prove the indexed code compiles or runs.
package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/anders/scenarist/internal/index"
	"github.com/anders/scenarist/internal/models"
)

// GapOptions selects which artifact groups to check.
type GapOptions struct {
	CheckPageObjects     bool
	CheckStepDefinitions bool
}

// DefaultGapOptions checks everything.
func DefaultGapOptions() GapOptions {
	return GapOptions{CheckPageObjects: true, CheckStepDefinitions: true}
}

// AnalyzeGaps diffs the component dependencies of one scenario against
// the artifact index. A required file missing from the index is a
// missing artifact; a file that exists while some of its members do not
// is an incomplete implementation.
func AnalyzeGaps(ctx context.Context, sc *models.Scenario, d *models.Dependencies, idx *index.Store, opts GapOptions) (*models.GapReport, error) {
	report := &models.GapReport{Tag: sc.Tag}

	for _, comp := range d.ComponentDependencies {
		switch comp.Kind {
		case "page_object":
			if !opts.CheckPageObjects {
				continue
			}
			if err := checkPageObject(ctx, comp, idx, report); err != nil {
				return nil, err
			}
		case "step_definition":
			if !opts.CheckStepDefinitions {
				continue
			}
			if err := checkStepDefinitions(ctx, comp, idx, report); err != nil {
				return nil, err
			}
		}
	}

	return report, nil
}

func checkPageObject(ctx context.Context, comp models.ComponentDependency, idx *index.Store, report *models.GapReport) error {
	fileExists, err := idx.Has(ctx, index.KindPageObjectFile, comp.File)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrCollaborator, err)
	}
	if !fileExists {
		report.MissingPageObjects = append(report.MissingPageObjects, comp.File)
	}

	for _, method := range comp.Members {
		has, err := idx.Has(ctx, index.KindPageObjectMethod, method)
		if err != nil {
			return fmt.Errorf("%w: %v", models.ErrCollaborator, err)
		}
		if has {
			continue
		}
		if fileExists {
			report.IncompleteImplementations = append(report.IncompleteImplementations,
				fmt.Sprintf("%s exists but is missing %s", comp.File, method))
		} else {
			report.MissingPageObjects = append(report.MissingPageObjects, method)
		}
	}
	return nil
}

func checkStepDefinitions(ctx context.Context, comp models.ComponentDependency, idx *index.Store, report *models.GapReport) error {
	fileExists, err := idx.Has(ctx, index.KindStepDefinitionFile, comp.File)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrCollaborator, err)
	}
	if !fileExists {
		report.MissingStepDefinitions = append(report.MissingStepDefinitions, comp.File)
	}

	for _, member := range comp.Members {
		pattern := innerPattern(member)
		has, err := idx.Has(ctx, index.KindStepPattern, pattern)
		if err != nil {
			return fmt.Errorf("%w: %v", models.ErrCollaborator, err)
		}
		if has {
			continue
		}
		if fileExists {
			report.IncompleteImplementations = append(report.IncompleteImplementations,
				fmt.Sprintf("%s exists but is missing pattern %s", comp.File, pattern))
		} else {
			report.MissingStepDefinitions = append(report.MissingStepDefinitions, pattern)
		}
	}
	return nil
}

// innerPattern extracts the anchored pattern from a rendered step
// definition member like `When('^the user taps "Submit"$')`.
func innerPattern(member string) string {
	if start := strings.Index(member, "('"); start >= 0 {
		if end := strings.LastIndex(member, "')"); end > start {
			return member[start+2 : end]
		}
	}
	return member
}

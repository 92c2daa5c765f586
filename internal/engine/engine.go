// Package engine exposes the tool surface: one entry point per tool,
// each returning a response envelope. The engine owns no parsing or
// synthesis logic of its own; it wires the corpus, parser, flow, deps,
// search, index, and plan packages together and converts their errors
// into error envelopes.
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/anders/scenarist/internal/corpus"
	"github.com/anders/scenarist/internal/deps"
	"github.com/anders/scenarist/internal/flow"
	"github.com/anders/scenarist/internal/index"
	"github.com/anders/scenarist/internal/locator"
	"github.com/anders/scenarist/internal/logger"
	"github.com/anders/scenarist/internal/models"
	"github.com/anders/scenarist/internal/plan"
	"github.com/anders/scenarist/internal/search"
)

// Engine binds the tool surface to its collaborators. The index store
// is optional: tools that do not need it work without one, and gap
// analysis reports a collaborator failure when it is absent.
type Engine struct {
	provider *corpus.Provider
	store    *index.Store
	log      *logger.ConsoleLogger
}

// New creates an engine. store may be nil; log may be nil to discard
// logging.
func New(provider *corpus.Provider, store *index.Store, log *logger.ConsoleLogger) *Engine {
	return &Engine{provider: provider, store: store, log: log}
}

// FetchOptions configures FetchScenario.
type FetchOptions struct {
	IncludeRelatedScenarios bool `json:"include_related_scenarios"`
	IncludePageObjects      bool `json:"include_page_objects"`
	IncludeStepDefinitions  bool `json:"include_step_definitions"`
}

// DefaultFetchOptions returns the tool surface defaults.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		IncludeRelatedScenarios: false,
		IncludePageObjects:      true,
		IncludeStepDefinitions:  true,
	}
}

// fetchResponse is the FetchScenario payload.
type fetchResponse struct {
	Scenario         *models.Scenario `json:"scenario"`
	PageObjects      []string         `json:"pageObjects,omitempty"`
	StepDefinitions  []string         `json:"stepDefinitions,omitempty"`
	RelatedScenarios []string         `json:"relatedScenarios,omitempty"`
}

// FetchScenario resolves a tag to its parsed scenario, optionally
// attaching synthesized automation artifact names and the other tags
// found in the same file.
func (e *Engine) FetchScenario(tag string, opts FetchOptions) Envelope {
	e.logCall("fetch_scenario_by_tag", tag)

	sc, err := locator.Locate(e.provider, tag)
	if err != nil {
		return errorEnvelope(err)
	}

	resp := fetchResponse{Scenario: sc}
	if opts.IncludePageObjects || opts.IncludeStepDefinitions {
		d := deps.Analyze(sc, deps.Options{})
		for _, comp := range d.ComponentDependencies {
			switch comp.Kind {
			case "page_object":
				if opts.IncludePageObjects {
					resp.PageObjects = append(resp.PageObjects, comp.File)
					resp.PageObjects = append(resp.PageObjects, comp.Members...)
				}
			case "step_definition":
				if opts.IncludeStepDefinitions {
					resp.StepDefinitions = append(resp.StepDefinitions, comp.File)
					resp.StepDefinitions = append(resp.StepDefinitions, comp.Members...)
				}
			}
		}
	}
	if opts.IncludeRelatedScenarios {
		related, err := locator.RelatedTags(e.provider, sc)
		if err != nil {
			return errorEnvelope(err)
		}
		resp.RelatedScenarios = related
	}

	return resultEnvelope(resp)
}

// FlowOptions configures GenerateFlow.
type FlowOptions struct {
	Platform             models.Platform    `json:"platform"`
	IncludeAssertions    bool               `json:"include_assertions"`
	IncludeErrorHandling bool               `json:"include_error_handling"`
	DetailLevel          models.DetailLevel `json:"detail_level"`
}

// DefaultFlowOptions returns the tool surface defaults.
func DefaultFlowOptions() FlowOptions {
	return FlowOptions{
		Platform:             models.PlatformBoth,
		IncludeAssertions:    true,
		IncludeErrorHandling: true,
		DetailLevel:          models.DetailDetailed,
	}
}

// GenerateFlow resolves a tag and synthesizes its execution flow.
func (e *Engine) GenerateFlow(tag string, opts FlowOptions) Envelope {
	e.logCall("generate_execution_flow", tag)

	sc, err := locator.Locate(e.provider, tag)
	if err != nil {
		return errorEnvelope(err)
	}

	f := flow.Synthesize(sc, flow.Options{
		Platform:             opts.Platform,
		IncludeAssertions:    opts.IncludeAssertions,
		IncludeErrorHandling: opts.IncludeErrorHandling,
		DetailLevel:          opts.DetailLevel,
	})
	return resultEnvelope(f)
}

// DepsOptions configures AnalyzeDependencies.
type DepsOptions struct {
	IncludeAPICallsFlow     bool `json:"include_api_calls_flow"`
	IncludeDataRequirements bool `json:"include_data_requirements"`
}

// DefaultDepsOptions returns the tool surface defaults.
func DefaultDepsOptions() DepsOptions {
	return DepsOptions{IncludeAPICallsFlow: true, IncludeDataRequirements: true}
}

// depsResponse is the AnalyzeDependencies payload.
type depsResponse struct {
	Tag          string               `json:"tag"`
	Dependencies *models.Dependencies `json:"dependencies"`
}

// AnalyzeDependencies resolves a tag and derives its dependency report.
func (e *Engine) AnalyzeDependencies(tag string, opts DepsOptions) Envelope {
	e.logCall("analyze_scenario_dependencies", tag)

	sc, err := locator.Locate(e.provider, tag)
	if err != nil {
		return errorEnvelope(err)
	}

	d := deps.Analyze(sc, deps.Options{
		IncludeAPICallsFlow:     opts.IncludeAPICallsFlow,
		IncludeDataRequirements: opts.IncludeDataRequirements,
	})
	return resultEnvelope(depsResponse{Tag: sc.Tag, Dependencies: d})
}

// SearchOptions configures SearchScenarios.
type SearchOptions struct {
	Limit int `json:"limit"`
}

// DefaultSearchOptions returns the tool surface defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Limit: 10}
}

// searchResponse is the SearchScenarios payload.
type searchResponse struct {
	Criteria search.Criteria       `json:"criteria"`
	Results  []models.SearchResult `json:"results"`
	Total    int                   `json:"total"`
}

// SearchScenarios runs a structured search over the corpus.
func (e *Engine) SearchScenarios(c search.Criteria, opts SearchOptions) Envelope {
	e.logCall("search_scenarios", "")

	if c.IsZero() {
		return errorEnvelope(fmt.Errorf("%w: no search criteria provided", models.ErrParseFailure))
	}

	results, err := search.Structured(e.provider, c, opts.Limit)
	if err != nil {
		return errorEnvelope(err)
	}
	return resultEnvelope(searchResponse{Criteria: c, Results: results, Total: len(results)})
}

// RelevanceOptions configures SearchRelevant.
type RelevanceOptions struct {
	FileTypes []string `json:"file_types"`
	Limit     int      `json:"limit"`
	MinScore  float64  `json:"min_score"`
}

// DefaultRelevanceOptions returns the tool surface defaults.
func DefaultRelevanceOptions() RelevanceOptions {
	return RelevanceOptions{Limit: 10, MinScore: 0.1}
}

// relevanceResponse is the SearchRelevant payload.
type relevanceResponse struct {
	Query   string                   `json:"query"`
	Results []models.RelevanceResult `json:"results"`
	Total   int                      `json:"total"`
}

// SearchRelevant ranks corpus files against a free-text query.
func (e *Engine) SearchRelevant(query string, opts RelevanceOptions) Envelope {
	e.logCall("search_relevant_scenarios", query)

	results, err := search.Relevance(e.provider, query, opts.FileTypes, opts.Limit, opts.MinScore)
	if err != nil {
		return errorEnvelope(err)
	}
	return resultEnvelope(relevanceResponse{Query: query, Results: results, Total: len(results)})
}

// PlanOptions configures GeneratePlan.
type PlanOptions struct {
	Strategy             models.ExecutionStrategy `json:"strategy"`
	IncludeSetupTeardown bool                     `json:"include_setup_teardown"`
}

// DefaultPlanOptions returns the tool surface defaults.
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{Strategy: models.StrategyOptimized, IncludeSetupTeardown: true}
}

// GeneratePlan resolves every requested tag, synthesizes flows and
// dependencies for each, and aggregates them into a test plan. Any tag
// failing to resolve fails the whole call; no partial plan is returned.
func (e *Engine) GeneratePlan(tags []string, opts PlanOptions) Envelope {
	e.logCall("generate_test_plan", fmt.Sprintf("%d tags", len(tags)))

	if len(tags) == 0 {
		return errorEnvelope(fmt.Errorf("%w: no scenario tags provided", models.ErrParseFailure))
	}

	inputs := make([]plan.Input, 0, len(tags))
	for _, tag := range tags {
		sc, err := locator.Locate(e.provider, tag)
		if err != nil {
			return errorEnvelope(err)
		}
		inputs = append(inputs, plan.Input{
			Scenario: sc,
			Flow:     flow.Synthesize(sc, flow.DefaultOptions()),
			Deps:     deps.Analyze(sc, deps.DefaultOptions()),
		})
	}

	tp := plan.Build(inputs, plan.BuildOptions{
		Strategy:             opts.Strategy,
		IncludeSetupTeardown: opts.IncludeSetupTeardown,
	})
	return resultEnvelope(tp)
}

// GapsOptions configures AnalyzeGaps.
type GapsOptions struct {
	CheckPageObjects     bool `json:"check_page_objects"`
	CheckStepDefinitions bool `json:"check_step_definitions"`
}

// DefaultGapsOptions returns the tool surface defaults.
func DefaultGapsOptions() GapsOptions {
	return GapsOptions{CheckPageObjects: true, CheckStepDefinitions: true}
}

// AnalyzeGaps resolves a tag and diffs its component dependencies
// against the artifact index.
func (e *Engine) AnalyzeGaps(ctx context.Context, tag string, opts GapsOptions) Envelope {
	e.logCall("analyze_automation_gaps", tag)

	if e.store == nil {
		return errorEnvelope(fmt.Errorf("%w: artifact index is not configured", models.ErrCollaborator))
	}

	sc, err := locator.Locate(e.provider, tag)
	if err != nil {
		return errorEnvelope(err)
	}

	d := deps.Analyze(sc, deps.DefaultOptions())
	report, err := plan.AnalyzeGaps(ctx, sc, d, e.store, plan.GapOptions{
		CheckPageObjects:     opts.CheckPageObjects,
		CheckStepDefinitions: opts.CheckStepDefinitions,
	})
	if err != nil {
		return errorEnvelope(err)
	}
	return resultEnvelope(report)
}

// logCall records one tool invocation at debug level with a short
// correlation id.
func (e *Engine) logCall(tool, subject string) {
	if e.log == nil {
		return
	}
	id := uuid.NewString()[:8]
	if subject == "" {
		e.log.Debug("tool=%s id=%s", tool, id)
		return
	}
	e.log.Debug("tool=%s id=%s subject=%s", tool, id, subject)
}

package models

// ExecutionStrategy controls how scenario durations aggregate in a test plan.
type ExecutionStrategy string

const (
	StrategySequential ExecutionStrategy = "sequential"
	StrategyParallel   ExecutionStrategy = "parallel"
	StrategyOptimized  ExecutionStrategy = "optimized"
)

// TestPlan aggregates multiple scenarios into one execution plan.
type TestPlan struct {
	ID                  string            `json:"id"`
	ScenarioTags        []string          `json:"scenario_tags"`
	ExecutionStrategy   ExecutionStrategy `json:"execution_strategy"`
	EstimatedDurationMs int               `json:"estimated_duration_ms"`
	Groups              [][]string        `json:"groups,omitempty"` // optimized strategy: tags runnable together
	Setup               []string          `json:"setup,omitempty"`
	Teardown            []string          `json:"teardown,omitempty"`
}

// GapReport lists automation artifacts a scenario requires but the
// artifact index does not know about. This is a diagnostic, not a
// build-time check: it never proves the referenced code compiles.
type GapReport struct {
	Tag                       string   `json:"tag"`
	MissingPageObjects        []string `json:"missing_page_objects"`
	MissingStepDefinitions    []string `json:"missing_step_definitions"`
	IncompleteImplementations []string `json:"incomplete_implementations"`
}

// HasGaps reports whether any gap was found.
func (g *GapReport) HasGaps() bool {
	return len(g.MissingPageObjects) > 0 ||
		len(g.MissingStepDefinitions) > 0 ||
		len(g.IncompleteImplementations) > 0
}

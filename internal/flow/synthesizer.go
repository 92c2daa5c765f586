// Package flow builds platform-targeted execution plans from parsed
// scenarios. A synthesized flow is a derived artifact: it is recomputed
// on every call and never cached, since the same scenario yields
// different flows for different platforms and detail levels.
package flow

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/anders/scenarist/internal/deps"
	"github.com/anders/scenarist/internal/models"
)

// Options configures one synthesis call.
type Options struct {
	Platform             models.Platform
	IncludeAssertions    bool
	IncludeErrorHandling bool
	DetailLevel          models.DetailLevel
}

// DefaultOptions mirrors the tool surface defaults.
func DefaultOptions() Options {
	return Options{
		Platform:             models.PlatformBoth,
		IncludeAssertions:    true,
		IncludeErrorHandling: true,
		DetailLevel:          models.DetailDetailed,
	}
}

// actionRule maps step-text keywords to an action type. Rules are
// checked in order against the lower-cased step text; the first match
// wins, so "tap" beats "verify" when both appear.
type actionRule struct {
	keywords []string
	action   string
}

var actionRules = []actionRule{
	{[]string{"tap", "click"}, "tap"},
	{[]string{"input", "type", "enter"}, "input"},
	{[]string{"scroll"}, "scroll"},
	{[]string{"swipe"}, "swipe"},
	{[]string{"see", "verify", "check"}, "verification"},
	{[]string{"wait"}, "wait"},
	{[]string{"navigate", "go to"}, "navigation"},
	{[]string{"logged in"}, "authentication"},
	{[]string{"skip"}, "conditional_action"},
}

// actionDurations is the fixed per-action duration table in
// milliseconds. Unknown actions use defaultDurationMs.
var actionDurations = map[string]int{
	"wait":           5000,
	"scroll":         4000,
	"swipe":          4000,
	"input":          3000,
	"navigation":     8000,
	"authentication": 8000,
	"tap":            2000,
	"verification":   3000,
}

const defaultDurationMs = 3000

// Phase weights of the total duration estimate, in milliseconds.
const (
	preConditionCostMs  = 5000
	assertionCostMs     = 2000
	postConditionCostMs = 3000
)

var accountPattern = regexp.MustCompile(`(?i)account\s+['"]([^'"]+)['"]`)

// Synthesize builds the execution flow for a scenario under the given
// options. The result depends only on the scenario content and the
// options; there is no hidden state.
func Synthesize(sc *models.Scenario, opts Options) *models.ExecutionFlow {
	if opts.Platform == "" {
		opts.Platform = models.PlatformBoth
	}
	if opts.DetailLevel == "" {
		opts.DetailLevel = models.DetailDetailed
	}

	f := &models.ExecutionFlow{
		Tag:      sc.Tag,
		Platform: opts.Platform,
	}

	f.PreConditions = preConditions(sc)
	f.MainFlow = mainFlow(sc, opts)
	if opts.IncludeAssertions {
		f.Assertions = assertions(sc)
	}
	if opts.IncludeErrorHandling {
		f.ErrorHandling = errorHandling()
	}
	f.PostConditions = postConditions()

	stepTotal := 0
	for _, step := range f.MainFlow {
		stepTotal += step.EstimatedDurationMs
	}
	f.EstimatedDurationMs = preConditionCostMs*len(f.PreConditions) +
		stepTotal +
		assertionCostMs*len(f.Assertions) +
		postConditionCostMs*len(f.PostConditions)

	f.Complexity = complexity(f)

	return f
}

// ActionType resolves a step's action type from the ordered keyword
// table. Steps matching no rule are "unknown".
func ActionType(stepText string) string {
	lower := strings.ToLower(stepText)
	for _, rule := range actionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.action
			}
		}
	}
	return "unknown"
}

// preConditions derives setup requirements from the scenario content.
// Conditions append independently; a scenario can need all three.
func preConditions(sc *models.Scenario) []models.PreCondition {
	var pre []models.PreCondition
	content := strings.ToLower(sc.BlockContent())

	if strings.Contains(content, "logged in") {
		pre = append(pre, models.PreCondition{
			Type:        "authentication",
			Description: "test user must be authenticated before the flow starts",
		})
	}
	if m := accountPattern.FindStringSubmatch(sc.BlockContent()); m != nil {
		pre = append(pre, models.PreCondition{
			Type:        "test_data",
			Description: fmt.Sprintf("test account %q must exist and be provisioned", m[1]),
		})
	}
	if strings.Contains(content, "go to") || strings.Contains(content, "navigate") {
		pre = append(pre, models.PreCondition{
			Type:        "navigation",
			Description: "app must be launched and on its entry screen",
		})
	}

	return pre
}

func mainFlow(sc *models.Scenario, opts Options) []models.FlowStep {
	steps := make([]models.FlowStep, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		action := ActionType(step.Text)
		duration, ok := actionDurations[action]
		if !ok {
			duration = defaultDurationMs
		}
		fs := models.FlowStep{
			StepNumber:          i + 1,
			Keyword:             step.Keyword,
			Description:         step.Text,
			ActionType:          action,
			EstimatedDurationMs: duration,
		}
		for _, platform := range opts.Platform.Targets() {
			fs.Implementations = append(fs.Implementations, implementation(step, action, platform, opts.DetailLevel))
		}
		steps = append(steps, fs)
	}
	return steps
}

// implementation produces the per-platform automation stub for one
// step. The detail level gates how much is attached: basic stops at
// selector and action, detailed adds the wait strategy, comprehensive
// adds page object method and step definition skeletons.
func implementation(step models.Step, action string, platform models.Platform, detail models.DetailLevel) models.PlatformImplementation {
	impl := models.PlatformImplementation{
		Platform: platform,
		Selector: selectorFor(step, platform),
		Action:   action,
	}
	if detail == models.DetailBasic {
		return impl
	}

	impl.WaitStrategy = waitStrategy(action)
	if detail != models.DetailComprehensive {
		return impl
	}

	impl.PageObjectMethod = deps.PageObjectMethod(step, "Element")
	escaped := strings.ReplaceAll(step.Text, "'", `\'`)
	impl.StepDefinition = fmt.Sprintf("%s('^%s$', async () => { /* TODO */ })", step.Keyword, escaped)
	return impl
}

// selectorFor builds a selector hint from the first quoted value in the
// step text. Android uses UiAutomator text selectors, iOS predicate
// strings; without a quoted value both fall back to an accessibility id
// placeholder.
func selectorFor(step models.Step, platform models.Platform) string {
	target := quoted(step.Text)
	if target == "" {
		return "~" + strings.ReplaceAll(strings.ToLower(step.Keyword), " ", "-") + "-element"
	}
	if platform == models.PlatformAndroid {
		return fmt.Sprintf(`android=new UiSelector().text("%s")`, target)
	}
	return fmt.Sprintf(`-ios predicate string:label == "%s"`, target)
}

func waitStrategy(action string) string {
	switch action {
	case "wait":
		return "fixed_delay"
	case "verification":
		return "wait_for_displayed"
	case "navigation", "authentication":
		return "wait_for_screen"
	default:
		return "wait_for_exist"
	}
}

var quotedPattern = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)

func quoted(text string) string {
	if m := quotedPattern.FindStringSubmatch(text); m != nil {
		if m[1] != "" {
			return m[1]
		}
		return m[2]
	}
	return ""
}

// assertions collects verifications: every Then step, every step whose
// text reads as a check, and one element assertion per example data
// column whose name contains "Selector".
func assertions(sc *models.Scenario) []models.Assertion {
	var asserts []models.Assertion
	for i, step := range sc.Steps {
		lower := strings.ToLower(step.Text)
		if step.Keyword == "Then" || strings.Contains(lower, "see") || strings.Contains(lower, "verify") {
			asserts = append(asserts, models.Assertion{
				Type:        "step",
				StepNumber:  i + 1,
				Description: step.Text,
			})
		}
	}
	columns := make([]string, 0, len(sc.ExampleData))
	for column := range sc.ExampleData {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		if strings.Contains(column, "Selector") {
			asserts = append(asserts, models.Assertion{
				Type:        "element",
				Description: fmt.Sprintf("element %q is displayed", sc.ExampleData[column]),
			})
		}
	}
	return asserts
}

// errorHandling is a fixed catalog, not derived from the scenario.
func errorHandling() []models.ErrorHandler {
	return []models.ErrorHandler{
		{
			Condition:   "element_not_found",
			Strategy:    "retry_with_scroll",
			Description: "scroll towards the expected element and retry the action",
		},
		{
			Condition:   "network_timeout",
			Strategy:    "retry_with_delay",
			Description: "wait and retry the request once the network settles",
		},
		{
			Condition:   "unexpected_popup",
			Strategy:    "dismiss_and_continue",
			Description: "dismiss system dialogs and promotional popups, then continue",
		},
	}
}

// postConditions is a fixed two-entry catalog.
func postConditions() []models.PostCondition {
	return []models.PostCondition{
		{Type: "cleanup", Description: "reset app state and discard scenario data"},
		{Type: "verification", Description: "confirm the flow completed without residual dialogs"},
	}
}

// complexity scores the flow: one point per step, half per assertion,
// two per gesture-heavy action (scroll, swipe, conditional). Scores of
// 5 or less are low, up to 15 medium, above that high.
func complexity(f *models.ExecutionFlow) models.Complexity {
	gestures := 0
	for _, step := range f.MainFlow {
		switch step.ActionType {
		case "scroll", "swipe", "conditional_action":
			gestures++
		}
	}
	score := float64(len(f.MainFlow)) + 0.5*float64(len(f.Assertions)) + 2*float64(gestures)
	switch {
	case score <= 5:
		return models.ComplexityLow
	case score <= 15:
		return models.ComplexityMedium
	default:
		return models.ComplexityHigh
	}
}

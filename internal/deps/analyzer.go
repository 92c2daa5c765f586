// Package deps derives API, data, and component dependencies from a
// parsed scenario using content heuristics. The heuristics are
// deliberately simple substring and regex checks; they classify what
// the scenario text says it needs, not what any backend actually
// exposes.
package deps

import (
	"regexp"
	"strings"

	"github.com/anders/scenarist/internal/models"
)

// Options selects which dependency groups to derive.
type Options struct {
	IncludeAPICallsFlow     bool
	IncludeDataRequirements bool
}

// DefaultOptions enables every dependency group.
func DefaultOptions() Options {
	return Options{IncludeAPICallsFlow: true, IncludeDataRequirements: true}
}

var (
	accountPattern   = regexp.MustCompile(`(?i)account\s+['"]([^'"]+)['"]`)
	componentPattern = regexp.MustCompile(`#([A-Za-z][A-Za-z0-9_-]*)`)
	quotedPattern    = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
)

// Analyze derives the dependency report for one scenario.
func Analyze(sc *models.Scenario, opts Options) *models.Dependencies {
	d := &models.Dependencies{}
	if opts.IncludeAPICallsFlow {
		d.APIDependencies = apiDependencies(sc)
	}
	if opts.IncludeDataRequirements {
		d.DataDependencies = dataDependencies(sc)
	}
	d.ComponentDependencies = componentDependencies(sc)
	return d
}

// apiDependencies maps content heuristics to fixed service entries.
func apiDependencies(sc *models.Scenario) []models.APIDependency {
	var apis []models.APIDependency
	content := strings.ToLower(sc.BlockContent())

	if sc.HasStepContaining("logged in") {
		apis = append(apis, models.APIDependency{
			Name:     "Authentication API",
			Endpoint: "/api/auth/login",
			Purpose:  "authenticate the test user before the scenario runs",
			Required: true,
		})
	}

	if feature := featureReference(sc, content); feature != "" {
		slug := strings.ReplaceAll(strings.ToLower(feature), " ", "-")
		apis = append(apis, models.APIDependency{
			Name:     feature + " Service",
			Endpoint: "/api/" + slug,
			Purpose:  "backend service for the " + feature + " feature under test",
			Required: true,
		})
	}

	if sc.HasStepContaining("me page") {
		apis = append(apis, models.APIDependency{
			Name:     "Profile API",
			Endpoint: "/api/user/profile",
			Purpose:  "load the Me page profile data",
			Required: true,
		})
	}

	return apis
}

// featureReference returns the feature name the block references: the
// file's feature name when the block mentions it, or the value of an
// example data column named "feature".
func featureReference(sc *models.Scenario, lowerContent string) string {
	if sc.FeatureName != "" && strings.Contains(lowerContent, strings.ToLower(sc.FeatureName)) {
		return sc.FeatureName
	}
	if v, ok := sc.ExampleData["feature"]; ok && v != "" {
		return v
	}
	return ""
}

func dataDependencies(sc *models.Scenario) []models.DataDependency {
	var data []models.DataDependency

	if m := accountPattern.FindStringSubmatch(sc.BlockContent()); m != nil {
		data = append(data, models.DataDependency{
			Name:     m[1],
			Kind:     "test_account",
			Value:    m[1],
			Purpose:  "account the scenario signs in with",
			Required: true,
		})
	}

	if v, ok := sc.ExampleData["feature"]; ok {
		data = append(data, models.DataDependency{
			Name:     strings.ReplaceAll(strings.ToLower(v), " ", ""),
			Kind:     "feature_flag",
			Value:    v,
			Purpose:  "feature flag enabling the scenario's target feature",
			Required: true,
		})
	}

	return data
}

// componentDependencies names the automation artifacts the scenario
// requires. A #token marker anywhere in the block names the associated
// page object and step definition files.
func componentDependencies(sc *models.Scenario) []models.ComponentDependency {
	token := componentToken(sc)
	if token == "" {
		return nil
	}

	return []models.ComponentDependency{
		{
			Kind:    "page_object",
			File:    token + ".page.js",
			Members: pageObjectMethods(sc.Steps, token),
		},
		{
			Kind:    "step_definition",
			File:    token + ".steps.js",
			Members: stepPatterns(sc.Steps),
		},
	}
}

// componentToken returns the first #token marker in the block, or "".
func componentToken(sc *models.Scenario) string {
	if m := componentPattern.FindStringSubmatch(sc.BlockContent()); m != nil {
		return m[1]
	}
	return ""
}

// pageObjectMethods synthesizes page object method names from step
// verbs. The noun is the first quoted substring of the step text,
// camel-cased; steps with no quoted value fall back to the component
// token. Duplicates are dropped, order preserved.
func pageObjectMethods(steps []models.Step, fallback string) []string {
	seen := make(map[string]bool)
	var methods []string
	add := func(m string) {
		if !seen[m] {
			seen[m] = true
			methods = append(methods, m)
		}
	}

	for _, step := range steps {
		noun := camel(quotedValue(step.Text))
		if noun == "" {
			noun = camel(fallback)
		}
		lower := strings.ToLower(step.Text)
		switch {
		case strings.Contains(lower, "tap") || strings.Contains(lower, "click"):
			add("tap" + noun + "()")
		case strings.Contains(lower, "see") || strings.Contains(lower, "verify"):
			add("verify" + noun + "IsDisplayed()")
		case strings.Contains(lower, "input") || strings.Contains(lower, "type"):
			add("input" + noun + "Text()")
		}
	}
	return methods
}

// PageObjectMethod returns the synthesized page object method for one
// step, or "" when the step maps to no interaction verb. The flow
// synthesizer uses this to attach code-level artifacts at comprehensive
// detail.
func PageObjectMethod(step models.Step, fallback string) string {
	methods := pageObjectMethods([]models.Step{step}, fallback)
	if len(methods) == 0 {
		return ""
	}
	return methods[0]
}

// stepPatterns renders each step as an anchored step-definition pattern
// with single quotes escaped.
func stepPatterns(steps []models.Step) []string {
	patterns := make([]string, 0, len(steps))
	for _, step := range steps {
		escaped := strings.ReplaceAll(step.Text, "'", `\'`)
		patterns = append(patterns, step.Keyword+"('^"+escaped+"$')")
	}
	return patterns
}

// quotedValue returns the first single- or double-quoted substring of
// text, or "".
func quotedValue(text string) string {
	if m := quotedPattern.FindStringSubmatch(text); m != nil {
		if m[1] != "" {
			return m[1]
		}
		return m[2]
	}
	return ""
}

// camel upper-cases the first letter of each word and strips spaces.
func camel(s string) string {
	words := strings.Fields(s)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]))
		if len(w) > 1 {
			b.WriteString(w[1:])
		}
	}
	return b.String()
}

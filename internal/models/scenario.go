// Package models defines the core data types shared across the scenario
// intelligence engine: parsed scenarios, execution flows, dependency
// reports, search results, and test plans.
package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Complexity classifies a scenario by its step count.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// ComplexityForStepCount returns the complexity class for a step count:
// 3 or fewer steps is low, 4-7 is medium, 8 or more is high.
func ComplexityForStepCount(steps int) Complexity {
	switch {
	case steps <= 3:
		return ComplexityLow
	case steps <= 7:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}

// Step is a single Given/When/Then step within a scenario.
// Steps are immutable after parse and keep their source order.
type Step struct {
	Keyword string `json:"keyword"` // Given, When, Then, And, But
	Text    string `json:"text"`
}

// ScenarioMetadata carries tags and derived classification for a scenario.
type ScenarioMetadata struct {
	Tags        []string   `json:"tags"`         // all tags found inside the scenario block
	FeatureTags []string   `json:"feature_tags"` // tags on the line preceding the Feature: header
	Complexity  Complexity `json:"complexity"`
}

// Scenario is the structured model of one tagged scenario, produced by
// the parser from a single scenario block. A scenario is uniquely
// identified by (Tag, FilePath) and is never mutated after creation.
type Scenario struct {
	Tag         string            `json:"tag"`
	FilePath    string            `json:"file_path"`
	FeatureName string            `json:"feature_name"`
	RawBlock    []string          `json:"raw_block"`
	Steps       []Step            `json:"steps"`
	ExampleData map[string]string `json:"example_data,omitempty"`
	Metadata    ScenarioMetadata  `json:"metadata"`
}

// tagPattern matches a canonical case tag: @NTC-<digits>.
var tagPattern = regexp.MustCompile(`^@NTC-\d+$`)

// NormalizeTag canonicalizes a tag identifier: the leading @ marker is
// added if missing and the NTC prefix is upper-cased. Returns an error
// if the result does not match @NTC-<digits>.
func NormalizeTag(tag string) (string, error) {
	t := strings.TrimSpace(tag)
	if !strings.HasPrefix(t, "@") {
		t = "@" + t
	}
	t = "@" + strings.ToUpper(t[1:])
	if !tagPattern.MatchString(t) {
		return "", fmt.Errorf("invalid tag %q: expected NTC-<digits>", tag)
	}
	return t, nil
}

// BlockContent returns the raw block joined as a single string.
// Heuristic analyzers match against this content.
func (s *Scenario) BlockContent() string {
	return strings.Join(s.RawBlock, "\n")
}

// HasStepContaining reports whether any step text contains the given
// substring, compared case-insensitively.
func (s *Scenario) HasStepContaining(substr string) bool {
	needle := strings.ToLower(substr)
	for _, step := range s.Steps {
		if strings.Contains(strings.ToLower(step.Text), needle) {
			return true
		}
	}
	return false
}

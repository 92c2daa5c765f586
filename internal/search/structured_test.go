package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anders/scenarist/internal/corpus"
)

const loginFeature = `Feature: Login

@NTC-100
Scenario: Successful login
  Given the user is logged in
  When the user taps "Login"
  Then the user should see "Welcome"

@NTC-101
Scenario: Failed login
  Given the user is logged in
  Then the user should see "Invalid credentials"
`

const flagsFeature = `Feature: Flags

Scenario Outline: Toggle a feature
  Given the user is logged in
  When the user enables "<feature>"

@NTC-200
Examples:
  | feature   | platform |
  | Dark Mode | android  |
`

func providerWith(t *testing.T, files map[string]string) *corpus.Provider {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	p, err := corpus.NewProvider(root, corpus.DefaultOptions())
	require.NoError(t, err)
	return p
}

func TestCriteriaIsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.False(t, Criteria{FeatureName: "Login"}.IsZero())
	assert.False(t, Criteria{Tags: []string{"@NTC-1"}}.IsZero())
	assert.False(t, Criteria{StepContains: "taps"}.IsZero())
	assert.False(t, Criteria{ExampleData: map[string]string{"a": "b"}}.IsZero())
}

func TestStructuredByTag(t *testing.T) {
	p := providerWith(t, map[string]string{
		"login.feature": loginFeature,
		"flags.feature": flagsFeature,
	})

	results, err := Structured(p, Criteria{Tags: []string{"ntc-100"}}, 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Scenario: Successful login", results[0].ScenarioHeader)
	assert.Equal(t, []string{"@NTC-100"}, results[0].MatchedContent)
}

func TestStructuredByStep(t *testing.T) {
	p := providerWith(t, map[string]string{"login.feature": loginFeature})

	results, err := Structured(p, Criteria{StepContains: "logged in"}, 10)
	require.NoError(t, err)

	// Both scenarios contain the step.
	require.Len(t, results, 2)
	assert.Equal(t, "Scenario: Successful login", results[0].ScenarioHeader)
	assert.Equal(t, "Scenario: Failed login", results[1].ScenarioHeader)
	assert.Contains(t, results[0].MatchedContent, "Given the user is logged in")
}

func TestStructuredByFeatureName(t *testing.T) {
	p := providerWith(t, map[string]string{
		"login.feature": loginFeature,
		"flags.feature": flagsFeature,
	})

	// The feature name filters files by name; the step criterion picks
	// the blocks.
	results, err := Structured(p, Criteria{FeatureName: "Flags", StepContains: "enables"}, 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Contains(t, results[0].File, "flags.feature")
}

func TestStructuredByExampleData(t *testing.T) {
	p := providerWith(t, map[string]string{"flags.feature": flagsFeature})

	results, err := Structured(p, Criteria{ExampleData: map[string]string{"feature": "Dark Mode"}}, 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Contains(t, results[0].MatchedContent, "| Dark Mode | android  |")
}

func TestStructuredExampleDataNeedsColumn(t *testing.T) {
	p := providerWith(t, map[string]string{"flags.feature": flagsFeature})

	results, err := Structured(p, Criteria{ExampleData: map[string]string{"nonexistent": "Dark Mode"}}, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStructuredLimit(t *testing.T) {
	p := providerWith(t, map[string]string{"login.feature": loginFeature})

	results, err := Structured(p, Criteria{StepContains: "logged in"}, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStructuredNoMatches(t *testing.T) {
	p := providerWith(t, map[string]string{"login.feature": loginFeature})

	results, err := Structured(p, Criteria{StepContains: "no such step"}, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want LineClass
	}{
		{"tag line", "@NTC-123", LineTag},
		{"multiple tags", "@smoke @NTC-45", LineTag},
		{"feature header", "Feature: Login", LineFeature},
		{"scenario header", "Scenario: Happy path", LineScenario},
		{"scenario outline header", "Scenario Outline: Variants", LineScenario},
		{"examples header", "Examples:", LineExamples},
		{"given step", "Given the user is logged in", LineStep},
		{"and step", "And the cart is empty", LineStep},
		{"table row", "| feature | selector |", LineTableRow},
		{"indented step", "    When the user taps \"Go\"", LineStep},
		{"plain text", "some free-form description", LinePlain},
		{"bare keyword is plain", "Given", LinePlain},
		{"empty", "", LinePlain},
		{"lone pipe is plain", "|", LinePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(0, tt.raw).Class)
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	// A tag line containing the word "Given" is still a tag line: the
	// first matching rule wins.
	line := classify(0, "@NTC-1 Given")
	assert.Equal(t, LineTag, line.Class)

	// A step whose text mentions a pipe is a step, not a table row.
	line = classify(0, "Given a value | with a pipe |")
	assert.Equal(t, LineStep, line.Class)
}

func TestClassifyStepFields(t *testing.T) {
	line := classify(4, "  When the user taps \"Login\"")
	assert.Equal(t, LineStep, line.Class)
	assert.Equal(t, "When", line.Keyword)
	assert.Equal(t, `the user taps "Login"`, line.Text)
	assert.Equal(t, 4, line.Index)
}

func TestClassifyTagFields(t *testing.T) {
	line := classify(0, "  @smoke @NTC-100  ")
	assert.Equal(t, LineTag, line.Class)
	assert.Equal(t, []string{"@smoke", "@NTC-100"}, line.Tags)
}

func TestClassifyFeatureTitle(t *testing.T) {
	line := classify(0, "Feature:   Checkout Flow  ")
	assert.Equal(t, LineFeature, line.Class)
	assert.Equal(t, "Checkout Flow", line.Text)
}

func TestClassifyScenarioTitle(t *testing.T) {
	line := classify(0, "Scenario Outline: Coupon variants")
	assert.Equal(t, "Coupon variants", line.Text)
}

func TestSplitCells(t *testing.T) {
	assert.Equal(t, []string{"feature", "selector"}, splitCells("| feature | selector |"))
	assert.Equal(t, []string{"a"}, splitCells("| a |"))
	// Empty cells are dropped.
	assert.Equal(t, []string{"a", "b"}, splitCells("| a |  | b |"))
}

func TestScan(t *testing.T) {
	content := "Feature: Login\n\n@NTC-1\nScenario: Sign in\n  Given the user is logged in"
	lines := Scan(content)
	require.Len(t, lines, 5)
	assert.Equal(t, LineFeature, lines[0].Class)
	assert.Equal(t, LinePlain, lines[1].Class)
	assert.Equal(t, LineTag, lines[2].Class)
	assert.Equal(t, LineScenario, lines[3].Class)
	assert.Equal(t, LineStep, lines[4].Class)
	for i, line := range lines {
		assert.Equal(t, i, line.Index)
	}
}

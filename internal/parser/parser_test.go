package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anders/scenarist/internal/models"
	"github.com/anders/scenarist/internal/scanner"
)

func scanAll(content string) []scanner.Line {
	return scanner.Scan(content)
}

func scannerClassAt(lines []scanner.Line, i int) string {
	return lines[i].Class.String()
}

const loginFeature = `Feature: Login

@NTC-100
Scenario: Successful login
  Given the user is logged in
  When the user taps "Login"
  Then the user should see "Welcome"

@NTC-101
Scenario: Failed login
  Given the user is logged in
  When the user taps "Login"
  Then the user should see "Invalid credentials"
`

func parseFixture(t *testing.T, content, tag string) *models.Scenario {
	t.Helper()
	sc, err := Parse(strings.Split(content, "\n"), tag, "login.feature")
	require.NoError(t, err)
	return sc
}

func TestParseScenario(t *testing.T) {
	sc := parseFixture(t, loginFeature, "@NTC-100")

	assert.Equal(t, "@NTC-100", sc.Tag)
	assert.Equal(t, "login.feature", sc.FilePath)
	assert.Equal(t, "Login", sc.FeatureName)
	assert.Equal(t, models.ComplexityLow, sc.Metadata.Complexity)
	assert.Contains(t, sc.Metadata.Tags, "@NTC-100")
	assert.Nil(t, sc.ExampleData)

	require.Len(t, sc.Steps, 3)
	assert.Equal(t, models.Step{Keyword: "Given", Text: "the user is logged in"}, sc.Steps[0])
	assert.Equal(t, models.Step{Keyword: "When", Text: `the user taps "Login"`}, sc.Steps[1])
	assert.Equal(t, models.Step{Keyword: "Then", Text: `the user should see "Welcome"`}, sc.Steps[2])
}

func TestParseStopsAtNextScenario(t *testing.T) {
	sc := parseFixture(t, loginFeature, "@NTC-100")

	block := sc.BlockContent()
	assert.Contains(t, block, "Successful login")
	assert.NotContains(t, block, "Failed login")
	assert.NotContains(t, block, "@NTC-101")
}

func TestParseSecondScenarioRunsToEOF(t *testing.T) {
	sc := parseFixture(t, loginFeature, "@NTC-101")

	require.Len(t, sc.Steps, 3)
	assert.Equal(t, `the user should see "Invalid credentials"`, sc.Steps[2].Text)
}

func TestParseNormalizesTagBeforeLookup(t *testing.T) {
	sc := parseFixture(t, loginFeature, "ntc-100")
	assert.Equal(t, "@NTC-100", sc.Tag)
}

func TestParseFindsLowercaseTagLine(t *testing.T) {
	content := strings.Replace(loginFeature, "@NTC-100", "@ntc-100", 1)
	sc := parseFixture(t, content, "@NTC-100")
	require.Len(t, sc.Steps, 3)
}

func TestParseDeterministic(t *testing.T) {
	first := parseFixture(t, loginFeature, "@NTC-100")
	second := parseFixture(t, loginFeature, "@NTC-100")
	assert.Equal(t, first, second)
}

func TestParseFeatureTags(t *testing.T) {
	content := "@mobile @regression\nFeature: Checkout\n\n@NTC-7\nScenario: Pay\n  Given the cart has items\n"
	sc := parseFixture(t, content, "@NTC-7")
	assert.Equal(t, "Checkout", sc.FeatureName)
	assert.Equal(t, []string{"@mobile", "@regression"}, sc.Metadata.FeatureTags)
}

func TestParseBindsFirstExampleRowOnly(t *testing.T) {
	content := `Feature: Flags

Scenario Outline: Toggle a feature
  Given the user is logged in
  When the user enables "<feature>"
  Then the toggle should be on

@NTC-200
Examples:
  | feature   | platform |
  | Dark Mode | android  |
  | Light     | ios      |
`
	sc := parseFixture(t, content, "@NTC-200")

	require.Len(t, sc.Steps, 3)
	assert.Equal(t, map[string]string{"feature": "Dark Mode", "platform": "android"}, sc.ExampleData)
}

func TestParseErrors(t *testing.T) {
	t.Run("invalid tag", func(t *testing.T) {
		_, err := Parse(strings.Split(loginFeature, "\n"), "@BAD-1", "f.feature")
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrParseFailure)
	})

	t.Run("tag not present", func(t *testing.T) {
		_, err := Parse(strings.Split(loginFeature, "\n"), "@NTC-999", "f.feature")
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrTagNotFound)
	})

	t.Run("no enclosing scenario", func(t *testing.T) {
		content := "Feature: Orphans\n\n@NTC-300\nsome prose that is not a scenario\n"
		_, err := Parse(strings.Split(content, "\n"), "@NTC-300", "f.feature")
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNoEnclosingScenario)
	})

	t.Run("malformed examples table", func(t *testing.T) {
		content := "Feature: Flags\n\nScenario Outline: Toggle\n  Given a flag\n\n@NTC-301\nExamples:\nno table here\n"
		_, err := Parse(strings.Split(content, "\n"), "@NTC-301", "f.feature")
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrMalformedTable)
	})
}

func TestSegmenterBlocks(t *testing.T) {
	lines := scanAll(loginFeature)
	blocks := NewSegmenter(lines).Blocks()

	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0].Tags(), "@NTC-100")
	assert.Contains(t, blocks[1].Tags(), "@NTC-101")

	// The tag run immediately preceding the header belongs to the block.
	assert.Equal(t, scannerClassAt(lines, blocks[0].Start), "tag")
	// Blocks do not overlap.
	assert.Less(t, blocks[0].End, blocks[1].Start)
}

func TestSegmenterBlockForTagNotATag(t *testing.T) {
	lines := scanAll(loginFeature)
	_, _, err := NewSegmenter(lines).BlockForTag(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrParseFailure))
}

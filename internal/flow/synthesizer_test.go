package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anders/scenarist/internal/models"
)

func loginScenario() *models.Scenario {
	return &models.Scenario{
		Tag:         "@NTC-100",
		FeatureName: "Login",
		RawBlock: []string{
			"@NTC-100",
			"Scenario: Successful login",
			"  Given the user is logged in",
			`  When the user taps "Login"`,
			`  Then the user should see "Welcome"`,
		},
		Steps: []models.Step{
			{Keyword: "Given", Text: "the user is logged in"},
			{Keyword: "When", Text: `the user taps "Login"`},
			{Keyword: "Then", Text: `the user should see "Welcome"`},
		},
	}
}

func TestActionType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"the user taps the button", "tap"},
		{"the user clicks submit", "tap"},
		{"the user types a name", "input"},
		{"the user scrolls down", "scroll"},
		{"the user swipes left", "swipe"},
		{"the user should see the banner", "verification"},
		{"the user waits for sync", "wait"},
		{"the user navigates home", "navigation"},
		{"the user is logged in", "authentication"},
		{"skip when the popup is absent", "conditional_action"},
		{"something else entirely", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ActionType(tt.text), "text=%q", tt.text)
	}
}

func TestActionTypeFirstRuleWins(t *testing.T) {
	// "tap" is checked before "verify".
	assert.Equal(t, "tap", ActionType("tap to verify the result"))
}

func TestSynthesizeMainFlow(t *testing.T) {
	f := Synthesize(loginScenario(), DefaultOptions())

	require.Len(t, f.MainFlow, 3)
	assert.Equal(t, "authentication", f.MainFlow[0].ActionType)
	assert.Equal(t, "tap", f.MainFlow[1].ActionType)
	assert.Equal(t, "verification", f.MainFlow[2].ActionType)

	for i, step := range f.MainFlow {
		assert.Equal(t, i+1, step.StepNumber)
	}

	assert.Equal(t, 8000, f.MainFlow[0].EstimatedDurationMs)
	assert.Equal(t, 2000, f.MainFlow[1].EstimatedDurationMs)
	assert.Equal(t, 3000, f.MainFlow[2].EstimatedDurationMs)
}

func TestSynthesizeDuration(t *testing.T) {
	f := Synthesize(loginScenario(), DefaultOptions())

	// 1 pre-condition (authentication), steps 8000+2000+3000,
	// 2 assertions (Then step + "see" step counted once each... the Then
	// step matches both conditions but is appended once), 2 fixed
	// post-conditions.
	require.Len(t, f.PreConditions, 1)
	require.Len(t, f.Assertions, 1)
	require.Len(t, f.PostConditions, 2)

	want := 5000*1 + 13000 + 2000*1 + 3000*2
	assert.Equal(t, want, f.EstimatedDurationMs)
}

func TestSynthesizePlatforms(t *testing.T) {
	t.Run("both targets two implementations", func(t *testing.T) {
		f := Synthesize(loginScenario(), DefaultOptions())
		require.Len(t, f.MainFlow[1].Implementations, 2)
		assert.Equal(t, models.PlatformAndroid, f.MainFlow[1].Implementations[0].Platform)
		assert.Equal(t, models.PlatformIOS, f.MainFlow[1].Implementations[1].Platform)
	})

	t.Run("single platform", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Platform = models.PlatformAndroid
		f := Synthesize(loginScenario(), opts)
		require.Len(t, f.MainFlow[1].Implementations, 1)
		assert.Equal(t, `android=new UiSelector().text("Login")`, f.MainFlow[1].Implementations[0].Selector)
	})

	t.Run("ios selector", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Platform = models.PlatformIOS
		f := Synthesize(loginScenario(), opts)
		assert.Equal(t, `-ios predicate string:label == "Login"`, f.MainFlow[1].Implementations[0].Selector)
	})
}

func TestSynthesizeDetailLevels(t *testing.T) {
	t.Run("basic stops at selector and action", func(t *testing.T) {
		opts := DefaultOptions()
		opts.DetailLevel = models.DetailBasic
		f := Synthesize(loginScenario(), opts)
		impl := f.MainFlow[1].Implementations[0]
		assert.NotEmpty(t, impl.Selector)
		assert.Empty(t, impl.WaitStrategy)
		assert.Empty(t, impl.PageObjectMethod)
	})

	t.Run("detailed adds wait strategy", func(t *testing.T) {
		f := Synthesize(loginScenario(), DefaultOptions())
		impl := f.MainFlow[1].Implementations[0]
		assert.Equal(t, "wait_for_exist", impl.WaitStrategy)
		assert.Empty(t, impl.PageObjectMethod)
	})

	t.Run("comprehensive adds code artifacts", func(t *testing.T) {
		opts := DefaultOptions()
		opts.DetailLevel = models.DetailComprehensive
		f := Synthesize(loginScenario(), opts)
		impl := f.MainFlow[1].Implementations[0]
		assert.Equal(t, "tapLogin()", impl.PageObjectMethod)
		assert.Contains(t, impl.StepDefinition, `When('^the user taps "Login"$'`)
	})
}

func TestSynthesizeToggles(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeAssertions = false
	opts.IncludeErrorHandling = false
	f := Synthesize(loginScenario(), opts)

	assert.Empty(t, f.Assertions)
	assert.Empty(t, f.ErrorHandling)
	// Assertion cost drops out of the estimate with the assertions.
	assert.Equal(t, 5000+13000+3000*2, f.EstimatedDurationMs)
}

func TestPreConditionsAppendIndependently(t *testing.T) {
	sc := &models.Scenario{
		Tag: "@NTC-7",
		RawBlock: []string{
			"Scenario: Kitchen sink",
			"  Given the user is logged in with account 'qa-user'",
			"  When the user navigates to settings",
		},
		Steps: []models.Step{
			{Keyword: "Given", Text: "the user is logged in with account 'qa-user'"},
			{Keyword: "When", Text: "the user navigates to settings"},
		},
	}

	f := Synthesize(sc, DefaultOptions())
	require.Len(t, f.PreConditions, 3)
	assert.Equal(t, "authentication", f.PreConditions[0].Type)
	assert.Equal(t, "test_data", f.PreConditions[1].Type)
	assert.Equal(t, "navigation", f.PreConditions[2].Type)
}

func TestAssertionsFromExampleSelectors(t *testing.T) {
	sc := loginScenario()
	sc.ExampleData = map[string]string{
		"loginSelector": "~login-button",
		"platform":      "android",
	}

	f := Synthesize(sc, DefaultOptions())

	var elementAsserts []models.Assertion
	for _, a := range f.Assertions {
		if a.Type == "element" {
			elementAsserts = append(elementAsserts, a)
		}
	}
	require.Len(t, elementAsserts, 1)
	assert.Contains(t, elementAsserts[0].Description, "~login-button")
}

func TestErrorHandlingCatalog(t *testing.T) {
	f := Synthesize(loginScenario(), DefaultOptions())
	require.Len(t, f.ErrorHandling, 3)
	assert.Equal(t, "element_not_found", f.ErrorHandling[0].Condition)
	assert.Equal(t, "retry_with_scroll", f.ErrorHandling[0].Strategy)
}

func TestComplexityScoring(t *testing.T) {
	t.Run("small flow is low", func(t *testing.T) {
		f := Synthesize(loginScenario(), DefaultOptions())
		assert.Equal(t, models.ComplexityLow, f.Complexity)
	})

	t.Run("gestures raise the score", func(t *testing.T) {
		steps := []models.Step{
			{Keyword: "When", Text: "the user scrolls down"},
			{Keyword: "And", Text: "the user swipes left"},
			{Keyword: "And", Text: "the user scrolls to the end"},
		}
		sc := &models.Scenario{Tag: "@NTC-8", Steps: steps, RawBlock: []string{"Scenario: Gestures"}}
		f := Synthesize(sc, DefaultOptions())
		// 3 steps + 2*3 gestures = 9 -> medium.
		assert.Equal(t, models.ComplexityMedium, f.Complexity)
	})
}

func TestSynthesizeDeterministic(t *testing.T) {
	sc := loginScenario()
	sc.ExampleData = map[string]string{
		"aSelector": "one",
		"bSelector": "two",
		"cSelector": "three",
	}

	first := Synthesize(sc, DefaultOptions())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Synthesize(sc, DefaultOptions()))
	}
}

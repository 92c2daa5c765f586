package models

// Platform selects the automation target for flow synthesis.
type Platform string

const (
	PlatformAndroid Platform = "Android"
	PlatformIOS     Platform = "iOS"
	PlatformBoth    Platform = "both"
)

// Targets expands the platform selector into concrete platforms.
func (p Platform) Targets() []Platform {
	if p == PlatformBoth {
		return []Platform{PlatformAndroid, PlatformIOS}
	}
	return []Platform{p}
}

// DetailLevel gates how much implementation detail a synthesized flow carries.
type DetailLevel string

const (
	DetailBasic         DetailLevel = "basic"
	DetailDetailed      DetailLevel = "detailed"
	DetailComprehensive DetailLevel = "comprehensive"
)

// PreCondition is a setup requirement that must hold before the main flow runs.
type PreCondition struct {
	Type        string `json:"type"` // authentication, test_data, navigation
	Description string `json:"description"`
}

// PlatformImplementation is the per-platform automation stub for one flow step.
type PlatformImplementation struct {
	Platform         Platform `json:"platform"`
	Selector         string   `json:"selector"`
	Action           string   `json:"action"`
	WaitStrategy     string   `json:"wait_strategy,omitempty"`
	PageObjectMethod string   `json:"page_object_method,omitempty"`
	StepDefinition   string   `json:"step_definition,omitempty"`
}

// FlowStep is one numbered step of the main execution flow.
type FlowStep struct {
	StepNumber          int                      `json:"step_number"`
	Keyword             string                   `json:"keyword"`
	Description         string                   `json:"description"`
	ActionType          string                   `json:"action_type"`
	Implementations     []PlatformImplementation `json:"implementations,omitempty"`
	EstimatedDurationMs int                      `json:"estimated_duration_ms"`
}

// Assertion is a verification attached to the flow.
type Assertion struct {
	Type        string `json:"type"` // step, element
	StepNumber  int    `json:"step_number,omitempty"`
	Description string `json:"description"`
}

// ErrorHandler describes a recovery strategy for a known failure condition.
type ErrorHandler struct {
	Condition   string `json:"condition"`
	Strategy    string `json:"strategy"`
	Description string `json:"description"`
}

// PostCondition is a cleanup or verification action after the main flow.
type PostCondition struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ExecutionFlow is the phase-structured automation plan synthesized from
// a scenario. Flows are derived values: they are recomputed on every
// synthesis call and never cached across calls with different options.
type ExecutionFlow struct {
	Tag                 string          `json:"tag"`
	Platform            Platform        `json:"platform"`
	PreConditions       []PreCondition  `json:"pre_conditions"`
	MainFlow            []FlowStep      `json:"main_flow"`
	Assertions          []Assertion     `json:"assertions"`
	ErrorHandling       []ErrorHandler  `json:"error_handling,omitempty"`
	PostConditions      []PostCondition `json:"post_conditions"`
	EstimatedDurationMs int             `json:"estimated_duration_ms"`
	Complexity          Complexity      `json:"complexity"`
}

package models

// APIDependency is a backend service the scenario relies on.
type APIDependency struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Purpose  string `json:"purpose"`
	Required bool   `json:"required"`
}

// DataDependency is a data prerequisite such as a test account or feature flag.
type DataDependency struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"` // test_account, feature_flag
	Value    string `json:"value,omitempty"`
	Purpose  string `json:"purpose"`
	Required bool   `json:"required"`
}

// ComponentDependency names an automation artifact the scenario requires:
// a page object file with its methods, or a step definition file with
// its step patterns.
type ComponentDependency struct {
	Kind    string   `json:"kind"` // page_object, step_definition
	File    string   `json:"file"`
	Members []string `json:"members"`
}

// Dependencies is the full dependency report derived from one scenario.
type Dependencies struct {
	APIDependencies       []APIDependency       `json:"api_dependencies"`
	DataDependencies      []DataDependency      `json:"data_dependencies"`
	ComponentDependencies []ComponentDependency `json:"component_dependencies"`
}

// ComponentNames returns the member names for a component kind across
// all component dependencies, in order.
func (d *Dependencies) ComponentNames(kind string) []string {
	var names []string
	for _, c := range d.ComponentDependencies {
		if c.Kind == kind {
			names = append(names, c.Members...)
		}
	}
	return names
}

package models

// SearchResult is one structured-search hit: a scenario block whose
// content matched the search criteria.
type SearchResult struct {
	File           string   `json:"file"`
	ScenarioHeader string   `json:"scenario_header"`
	MatchedContent []string `json:"matched_content"`
}

// RelevanceResult is one free-text search hit with a normalized score.
type RelevanceResult struct {
	File    string  `json:"file"`
	Score   float64 `json:"score"` // clamped to [0,1]
	Snippet string  `json:"snippet"`
}

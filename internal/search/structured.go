// Package search implements the two search modes over the scenario
// corpus: structured multi-criterion search over scenario blocks, and a
// free-text relevance search using a deterministic term-frequency
// heuristic. Neither mode involves embeddings or any model call.
package search

import (
	"path/filepath"
	"strings"

	"github.com/anders/scenarist/internal/corpus"
	"github.com/anders/scenarist/internal/models"
	"github.com/anders/scenarist/internal/parser"
	"github.com/anders/scenarist/internal/scanner"
)

// Criteria is the structured search request. Zero-valued fields are
// ignored; a block matches when any provided criterion matches a line
// inside it.
type Criteria struct {
	FeatureName  string            `json:"feature_name,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	StepContains string            `json:"step_contains,omitempty"`
	ExampleData  map[string]string `json:"example_data,omitempty"`
}

// IsZero reports whether no criterion was provided.
func (c Criteria) IsZero() bool {
	return c.FeatureName == "" && len(c.Tags) == 0 && c.StepContains == "" && len(c.ExampleData) == 0
}

// Structured scans every candidate file, derives scenario blocks with
// the same segmenter the parser uses, and returns the blocks matching
// the criteria in file-then-position order, truncated to limit.
func Structured(p *corpus.Provider, c Criteria, limit int) ([]models.SearchResult, error) {
	files, err := p.Files()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	var results []models.SearchResult
	for _, file := range files {
		if c.FeatureName != "" && !fileNameMatches(file, c.FeatureName) {
			continue
		}

		lines, err := p.ReadLines(file)
		if err != nil {
			return nil, err
		}
		classified := scanner.ScanLines(lines)
		for _, block := range parser.NewSegmenter(classified).Blocks() {
			matched := matchBlock(block, c)
			if len(matched) == 0 {
				continue
			}
			results = append(results, models.SearchResult{
				File:           file,
				ScenarioHeader: scenarioHeader(block),
				MatchedContent: matched,
			})
			if len(results) >= limit {
				return results, nil
			}
		}
	}
	return results, nil
}

// fileNameMatches checks the feature name against the file's base name,
// case-insensitively and ignoring spaces.
func fileNameMatches(file, featureName string) bool {
	base := strings.ToLower(filepath.Base(file))
	needle := strings.ReplaceAll(strings.ToLower(featureName), " ", "")
	return strings.Contains(strings.ReplaceAll(base, " ", ""), needle)
}

func scenarioHeader(block parser.Block) string {
	if block.HeaderIndex >= 0 {
		return block.Lines[block.HeaderIndex-block.Start].Trimmed
	}
	return ""
}

// matchBlock returns the trimmed lines inside the block that satisfy
// any of the provided criteria.
func matchBlock(block parser.Block, c Criteria) []string {
	var matched []string
	headerCells := exampleHeader(block)

	for _, line := range block.Lines {
		if lineMatches(line, c, headerCells) {
			matched = append(matched, line.Trimmed)
		}
	}
	return matched
}

// exampleHeader returns the first table row of the block, which carries
// the example column names.
func exampleHeader(block parser.Block) []string {
	for _, line := range block.Lines {
		if line.Class == scanner.LineTableRow {
			return line.Cells
		}
	}
	return nil
}

func lineMatches(line scanner.Line, c Criteria, headerCells []string) bool {
	switch line.Class {
	case scanner.LineTag:
		for _, want := range c.Tags {
			norm, err := models.NormalizeTag(want)
			if err != nil {
				continue
			}
			for _, have := range line.Tags {
				if strings.EqualFold(have, norm) {
					return true
				}
			}
		}
	case scanner.LineStep:
		if c.StepContains != "" &&
			strings.Contains(strings.ToLower(line.Text), strings.ToLower(c.StepContains)) {
			return true
		}
	case scanner.LineTableRow:
		for column, value := range c.ExampleData {
			if !containsFold(headerCells, column) {
				continue
			}
			if containsFold(line.Cells, value) {
				return true
			}
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

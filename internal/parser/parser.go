// Package parser produces the structured Scenario model from a scanned
// specification file. Parsing is a pure function of the raw text: the
// same input bytes always yield an identical Scenario.
package parser

import (
	"fmt"
	"strings"

	"github.com/anders/scenarist/internal/models"
	"github.com/anders/scenarist/internal/scanner"
)

// Parse extracts the scenario identified by tag from the given file
// lines. filePath is recorded on the result for identity; it is not
// read. Returns an error wrapping models.ErrParseFailure when the tag is
// absent, has no enclosing scenario, or its examples table is malformed.
func Parse(fileLines []string, tag, filePath string) (*models.Scenario, error) {
	norm, err := models.NormalizeTag(tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrParseFailure, err)
	}

	lines := scanner.ScanLines(fileLines)
	tagIdx := findTagLine(lines, norm)
	if tagIdx < 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrTagNotFound, norm)
	}

	seg := NewSegmenter(lines)
	start, end, err := seg.BlockForTag(tagIdx)
	if err != nil {
		return nil, err
	}

	exampleData, err := bindExamples(lines, tagIdx)
	if err != nil {
		return nil, err
	}

	var steps []models.Step
	rawBlock := make([]string, 0, end-start+1)
	tagSeen := make(map[string]bool)
	var blockTags []string
	for i := start; i <= end; i++ {
		rawBlock = append(rawBlock, lines[i].Raw)
		switch lines[i].Class {
		case scanner.LineStep:
			steps = append(steps, models.Step{Keyword: lines[i].Keyword, Text: lines[i].Text})
		case scanner.LineTag:
			for _, t := range lines[i].Tags {
				if !tagSeen[t] {
					tagSeen[t] = true
					blockTags = append(blockTags, t)
				}
			}
		}
	}

	featureName, featureTags := featureHeader(lines)

	return &models.Scenario{
		Tag:         norm,
		FilePath:    filePath,
		FeatureName: featureName,
		RawBlock:    rawBlock,
		Steps:       steps,
		ExampleData: exampleData,
		Metadata: models.ScenarioMetadata{
			Tags:        blockTags,
			FeatureTags: featureTags,
			Complexity:  models.ComplexityForStepCount(len(steps)),
		},
	}, nil
}

// findTagLine returns the index of the first line whose trimmed content
// exactly equals the tag (marker case folded), or -1.
func findTagLine(lines []scanner.Line, tag string) int {
	for _, line := range lines {
		if line.Class == scanner.LineTag && strings.EqualFold(line.Trimmed, tag) {
			return line.Index
		}
	}
	return -1
}

// bindExamples binds the first data row of the Examples table following
// the tag line. The first table row after the Examples header is the
// column header row; the first row after that is the data row. Scanning
// stops at the first data row, so only one row is ever bound per tag
// even when more rows follow — this mirrors the source tooling and is
// deliberate, since row-to-tag correspondence is undefined there.
// Scanning also stops, binding nothing, when a new tag or scenario
// header appears before an Examples header.
func bindExamples(lines []scanner.Line, tagIdx int) (map[string]string, error) {
	examplesIdx := -1
	for i := tagIdx + 1; i < len(lines); i++ {
		switch lines[i].Class {
		case scanner.LineExamples:
			examplesIdx = i
		case scanner.LineTag, scanner.LineScenario:
			return nil, nil
		}
		if examplesIdx >= 0 {
			break
		}
	}
	if examplesIdx < 0 {
		return nil, nil
	}

	var header []string
	for i := examplesIdx + 1; i < len(lines); i++ {
		switch lines[i].Class {
		case scanner.LineTableRow:
			if header == nil {
				header = lines[i].Cells
				continue
			}
			data := lines[i].Cells
			bound := make(map[string]string, len(header))
			for c := 0; c < len(header) && c < len(data); c++ {
				bound[header[c]] = data[c]
			}
			return bound, nil
		case scanner.LineTag, scanner.LineScenario:
			if header == nil {
				return nil, models.ErrMalformedTable
			}
			return nil, nil
		}
	}
	if header == nil {
		return nil, models.ErrMalformedTable
	}
	return nil, nil
}

// featureHeader returns the title of the first Feature: line in the
// file and the tags on the line immediately preceding it, if any.
func featureHeader(lines []scanner.Line) (name string, tags []string) {
	for i, line := range lines {
		if line.Class != scanner.LineFeature {
			continue
		}
		name = line.Text
		if i > 0 && lines[i-1].Class == scanner.LineTag {
			tags = lines[i-1].Tags
		}
		return name, tags
	}
	return "", nil
}

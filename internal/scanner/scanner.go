// Package scanner converts raw feature specification text into a
// sequence of classified lines. Classification happens once per file;
// the parser and the search engine both work from the classified
// sequence instead of re-matching raw text.
package scanner

import (
	"strings"
)

// LineClass identifies what kind of line a trimmed specification line is.
type LineClass int

const (
	// LinePlain is any line that matches no other class.
	LinePlain LineClass = iota
	// LineTag is an @-prefixed tag line, possibly carrying several tags.
	LineTag
	// LineFeature is a "Feature:" header.
	LineFeature
	// LineScenario is a "Scenario:" or "Scenario Outline:" header.
	LineScenario
	// LineExamples is an "Examples:" header.
	LineExamples
	// LineStep is a Given/When/Then/And/But step.
	LineStep
	// LineTableRow is a pipe-delimited example table row.
	LineTableRow
)

// String returns the class name for diagnostics.
func (c LineClass) String() string {
	switch c {
	case LineTag:
		return "tag"
	case LineFeature:
		return "feature"
	case LineScenario:
		return "scenario"
	case LineExamples:
		return "examples"
	case LineStep:
		return "step"
	case LineTableRow:
		return "table_row"
	default:
		return "plain"
	}
}

// Line is a single classified line of a specification file.
// Index is the zero-based position in the source file.
type Line struct {
	Index   int
	Raw     string
	Trimmed string
	Class   LineClass

	// Keyword and Text are set for step lines; Text also carries the
	// feature title on feature header lines.
	Keyword string
	Text    string

	// Tags holds the space-split tags on a tag line.
	Tags []string

	// Cells holds the trimmed, non-empty cells of a table row.
	Cells []string
}

// stepKeywords are matched in order against the line start. The trailing
// space keeps "Given" from matching words like "Givenness".
var stepKeywords = []string{"Given ", "When ", "Then ", "And ", "But "}

// Scan splits content into lines and classifies each one. The first
// matching rule wins; no line belongs to two classes.
func Scan(content string) []Line {
	raw := strings.Split(content, "\n")
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = classify(i, r)
	}
	return lines
}

// ScanLines classifies an already-split slice of raw lines.
func ScanLines(raw []string) []Line {
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = classify(i, r)
	}
	return lines
}

func classify(index int, raw string) Line {
	trimmed := strings.TrimSpace(raw)
	line := Line{Index: index, Raw: raw, Trimmed: trimmed, Class: LinePlain}

	switch {
	case strings.HasPrefix(trimmed, "@"):
		line.Class = LineTag
		line.Tags = strings.Fields(trimmed)
	case strings.HasPrefix(trimmed, "Feature:"):
		line.Class = LineFeature
		line.Text = strings.TrimSpace(strings.TrimPrefix(trimmed, "Feature:"))
	case strings.HasPrefix(trimmed, "Scenario"):
		line.Class = LineScenario
		if _, title, ok := strings.Cut(trimmed, ":"); ok {
			line.Text = strings.TrimSpace(title)
		}
	case strings.HasPrefix(trimmed, "Examples:"):
		line.Class = LineExamples
	case stepKeyword(trimmed) != "":
		line.Class = LineStep
		kw := stepKeyword(trimmed)
		line.Keyword = strings.TrimSpace(kw)
		line.Text = strings.TrimSpace(strings.TrimPrefix(trimmed, kw))
	case len(trimmed) >= 2 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|"):
		line.Class = LineTableRow
		line.Cells = splitCells(trimmed)
	}

	return line
}

// stepKeyword returns the matching step keyword prefix (with trailing
// space) or the empty string.
func stepKeyword(trimmed string) string {
	for _, kw := range stepKeywords {
		if strings.HasPrefix(trimmed, kw) {
			return kw
		}
	}
	return ""
}

// splitCells splits a pipe-delimited row into trimmed cells, dropping
// empty cells (including the ones produced by the outer pipes).
func splitCells(trimmed string) []string {
	parts := strings.Split(trimmed, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

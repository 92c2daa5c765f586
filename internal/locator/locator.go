// Package locator finds the specification file containing a tag and
// hands it to the parser.
package locator

import (
	"fmt"
	"strings"

	"github.com/anders/scenarist/internal/corpus"
	"github.com/anders/scenarist/internal/models"
	"github.com/anders/scenarist/internal/parser"
)

// Locate resolves a tag to its parsed Scenario. The corpus provider's
// result order is authoritative: when several files contain the tag,
// the first candidate in enumeration order wins, and only lines whose
// trimmed content exactly equals the tag count — substring hits do not.
// Returns an error wrapping models.ErrNotFound when no file contains
// the tag.
func Locate(p *corpus.Provider, tag string) (*models.Scenario, error) {
	norm, err := models.NormalizeTag(tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrNotFound, err)
	}

	matches, err := p.GrepExact(norm)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, norm)
	}

	first := matches[0]
	lines, err := p.ReadLines(first.File)
	if err != nil {
		return nil, err
	}

	return parser.Parse(lines, norm, first.File)
}

// RelatedTags returns the other tags present in the same file as the
// scenario, in source order. Used to attach related scenarios to a
// fetch response.
func RelatedTags(p *corpus.Provider, sc *models.Scenario) ([]string, error) {
	lines, err := p.ReadLines(sc.FilePath)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{sc.Tag: true}
	var related []string
	for _, raw := range lines {
		for _, field := range strings.Fields(raw) {
			if norm, err := models.NormalizeTag(field); err == nil && !seen[norm] {
				seen[norm] = true
				related = append(related, norm)
			}
		}
	}
	return related, nil
}

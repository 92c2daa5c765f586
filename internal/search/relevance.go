package search

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/anders/scenarist/internal/corpus"
	"github.com/anders/scenarist/internal/models"
)

// term-frequency scoring weights.
const (
	frequencyWeight  = 10.0 // per-term frequency/wordCount contribution
	coverageWeight   = 5.0  // matched terms / total terms contribution
	filenameTermBump = 2.0  // per term appearing in the file name
)

// Relevance ranks candidate files against a free-text query. The score
// is a deterministic term-frequency heuristic clamped to [0,1]:
// frequency of each term relative to the file's word count, coverage of
// the query terms, and a bump per term present in the file name.
// Results below minScore are dropped, the rest sorted by descending
// score and truncated to limit.
func Relevance(p *corpus.Provider, query string, fileTypes []string, limit int, minScore float64) ([]models.RelevanceResult, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	files, err := p.Files()
	if err != nil {
		return nil, err
	}

	var results []models.RelevanceResult
	for _, file := range files {
		if !typeAllowed(file, fileTypes) {
			continue
		}
		lines, err := p.ReadLines(file)
		if err != nil {
			return nil, err
		}

		score := scoreFile(file, lines, terms)
		if score < minScore {
			continue
		}
		results = append(results, models.RelevanceResult{
			File:    file,
			Score:   score,
			Snippet: bestSnippet(lines, terms),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func typeAllowed(file string, fileTypes []string) bool {
	if len(fileTypes) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(file))
	for _, t := range fileTypes {
		if !strings.HasPrefix(t, ".") {
			t = "." + t
		}
		if strings.EqualFold(t, ext) {
			return true
		}
	}
	return false
}

func scoreFile(file string, lines []string, terms []string) float64 {
	content := strings.Join(lines, "\n")
	if strings.ToLower(filepath.Ext(file)) == ".md" {
		// Strip markdown syntax before counting so formatting
		// characters do not distort term frequencies.
		content = markdownText([]byte(content))
	}
	words := strings.Fields(strings.ToLower(content))
	if len(words) == 0 {
		return 0
	}

	lowerName := strings.ToLower(filepath.Base(file))
	score := 0.0
	matchedTerms := 0
	for _, term := range terms {
		freq := 0
		for _, w := range words {
			if strings.Contains(w, term) {
				freq++
			}
		}
		if freq > 0 {
			matchedTerms++
			score += float64(freq) / float64(len(words)) * frequencyWeight
		}
		if strings.Contains(lowerName, term) {
			score += filenameTermBump
		}
	}
	score += float64(matchedTerms) / float64(len(terms)) * coverageWeight

	return clamp01(score)
}

// bestSnippet returns the line matching the most query terms, ties
// broken by first occurrence; if no line matches, the file's first line.
func bestSnippet(lines []string, terms []string) string {
	bestIdx, bestCount := -1, 0
	for i, line := range lines {
		lower := strings.ToLower(line)
		count := 0
		for _, term := range terms {
			if strings.Contains(lower, term) {
				count++
			}
		}
		if count > bestCount {
			bestIdx, bestCount = i, count
		}
	}
	if bestIdx < 0 {
		if len(lines) == 0 {
			return ""
		}
		return strings.TrimSpace(lines[0])
	}
	return strings.TrimSpace(lines[bestIdx])
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

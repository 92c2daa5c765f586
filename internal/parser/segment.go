package parser

import (
	"fmt"

	"github.com/anders/scenarist/internal/models"
	"github.com/anders/scenarist/internal/scanner"
)

// segState is the segmenter state while walking classified lines.
type segState int

const (
	// stateSeeking: before the first scenario header of the file.
	stateSeeking segState = iota
	// stateInScenario: inside a scenario block, before its Examples.
	stateInScenario
	// stateInExamples: inside an Examples region of the current block.
	stateInExamples
)

// Block is a contiguous range of classified lines holding one scenario:
// its tags, header, steps, and example tables. Start and End are
// inclusive line indexes.
type Block struct {
	Start       int
	End         int
	HeaderIndex int // index of the Scenario header line, -1 if none
	Lines       []scanner.Line
}

// Tags returns all tags on tag lines inside the block, deduplicated in
// source order.
func (b *Block) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, line := range b.Lines {
		if line.Class != scanner.LineTag {
			continue
		}
		for _, t := range line.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// Segmenter derives scenario block boundaries from a classified line
// sequence. Both the parser and the structured search use it, so the
// header-detection rules live in exactly one place.
type Segmenter struct {
	lines []scanner.Line
}

// NewSegmenter wraps a classified line sequence.
func NewSegmenter(lines []scanner.Line) *Segmenter {
	return &Segmenter{lines: lines}
}

// Blocks partitions the file into scenario blocks. A block opens at a
// Scenario header (pulling in a run of tag lines immediately preceding
// it) and closes before the next block opens or at end of file. Lines
// before the first scenario header belong to no block.
func (s *Segmenter) Blocks() []Block {
	var blocks []Block
	state := stateSeeking
	blockStart, headerIdx := -1, -1
	pendingStart := -1 // start of a tag run not yet attached to a block

	closeBlock := func(end int) {
		if state == stateSeeking || blockStart < 0 || end < blockStart {
			return
		}
		blocks = append(blocks, Block{
			Start:       blockStart,
			End:         end,
			HeaderIndex: headerIdx,
			Lines:       s.lines[blockStart : end+1],
		})
	}

	for i, line := range s.lines {
		switch line.Class {
		case scanner.LineScenario:
			start := i
			if pendingStart >= 0 {
				start = pendingStart
			}
			closeBlock(start - 1)
			state = stateInScenario
			blockStart, headerIdx = start, i
			pendingStart = -1
		case scanner.LineTag:
			if pendingStart < 0 {
				pendingStart = i
			}
		case scanner.LineExamples:
			if state == stateInScenario || state == stateInExamples {
				state = stateInExamples
			}
			pendingStart = -1
		default:
			pendingStart = -1
		}
	}
	closeBlock(len(s.lines) - 1)

	return blocks
}

// BlockForTag computes the block boundaries for the tag line at tagIdx.
//
// Start: if the tag run beginning at tagIdx is immediately followed by a
// Scenario header, the block starts at the tag line (the tag annotates
// the scenario that follows it). Otherwise the block starts at the
// nearest Scenario or Examples header before the tag; if there is none,
// the tag has no enclosing scenario.
//
// End: the line before the next Scenario header, or before the next tag
// line that is not immediately followed by an Examples header (a tag
// belonging to a different scenario), or the last line of the file.
func (s *Segmenter) BlockForTag(tagIdx int) (start, end int, err error) {
	if tagIdx < 0 || tagIdx >= len(s.lines) || s.lines[tagIdx].Class != scanner.LineTag {
		return 0, 0, fmt.Errorf("%w: line %d is not a tag line", models.ErrParseFailure, tagIdx)
	}

	// Skip the remainder of the tag run to see what it annotates.
	next := tagIdx + 1
	for next < len(s.lines) && s.lines[next].Class == scanner.LineTag {
		next++
	}

	scanFrom := tagIdx + 1
	if next < len(s.lines) && s.lines[next].Class == scanner.LineScenario {
		start = tagIdx
		scanFrom = next + 1
	} else {
		start = -1
		for i := tagIdx - 1; i >= 0; i-- {
			if c := s.lines[i].Class; c == scanner.LineScenario || c == scanner.LineExamples {
				start = i
				break
			}
		}
		if start < 0 {
			return 0, 0, models.ErrNoEnclosingScenario
		}
	}

	end = len(s.lines) - 1
	for i := scanFrom; i < len(s.lines); i++ {
		if s.boundary(i) {
			end = i - 1
			break
		}
	}

	return start, end, nil
}

// boundary reports whether line i ends the preceding block: a Scenario
// header, or a tag line not immediately followed by an Examples header.
func (s *Segmenter) boundary(i int) bool {
	switch s.lines[i].Class {
	case scanner.LineScenario:
		return true
	case scanner.LineTag:
		return i+1 >= len(s.lines) || s.lines[i+1].Class != scanner.LineExamples
	default:
		return false
	}
}

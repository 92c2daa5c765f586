package search

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownText extracts the plain text of a markdown document by
// walking its AST and collecting text segments. Used so relevance
// scoring over .md candidates counts words, not markup.
func markdownText(source []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			buf.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

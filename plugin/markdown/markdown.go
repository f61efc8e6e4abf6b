// Package markdown strips markdown syntax from thought text. Thoughts are
// often pasted from notes with headings, emphasis and links; the analysis
// pipeline tokenizes plain words, so markup is flattened before similarity
// and frequency statistics ever see it.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// PlainText renders the markdown source as plain text: all markup removed,
// block boundaries collapsed to single spaces.
func PlainText(source string) string {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.AutoLink:
			b.Write(node.URL(src))
		default:
			// Separate sibling blocks with a space so words never fuse.
			if n.Type() == ast.TypeBlock && b.Len() > 0 {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

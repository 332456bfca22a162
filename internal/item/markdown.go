package item

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// leadingBlockText renders the first non-empty block of a markdown source as plain single-line text.
func leadingBlockText(source []byte) string {
	if len(bytes.TrimSpace(source)) == 0 {
		return ""
	}
	doc := markdown.Parser().Parse(text.NewReader(source))
	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		if plain := strings.Join(strings.Fields(plainText(block, source)), " "); plain != "" {
			return plain
		}
	}
	return ""
}

func plainText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	switch node := n.(type) {
	case *ast.Text:
		buf.Write(node.Segment.Value(source))
		if node.SoftLineBreak() || node.HardLineBreak() {
			buf.WriteByte(' ')
		}
		return buf.String()
	case *ast.String:
		return string(node.Value)
	case *ast.CodeBlock, *ast.FencedCodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(source))
		}
		return buf.String()
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		buf.WriteString(plainText(child, source))
	}
	return buf.String()
}

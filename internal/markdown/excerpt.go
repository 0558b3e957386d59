package markdown

import (
	"strings"
	"unicode"

	"github.com/gomarkdown/markdown/ast"
)

// breakSearchRatio bounds how far back Excerpt looks for a word break.
const breakSearchRatio = 0.8

// Excerpt returns the post's prose as plain text, cut to at most maxChars
// runes plus an ellipsis. Code blocks, images, tables and raw HTML are left out.
func Excerpt(source string, maxChars int) string {
	if maxChars < 1 || strings.TrimSpace(source) == "" {
		return ""
	}

	var text strings.Builder
	ast.WalkFunc(parse(source), func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.CodeBlock, *ast.Image, *ast.HTMLBlock, *ast.HTMLSpan, *ast.Table:
			return ast.SkipChildren
		case *ast.Text:
			if entering {
				text.Write(n.Literal)
			}
		case *ast.Code:
			if entering {
				text.Write(n.Literal)
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Softbreak, *ast.Hardbreak:
			text.WriteByte(' ')
		}
		return ast.GoToNext
	})

	return truncateRunes(strings.Join(strings.Fields(text.String()), " "), maxChars)
}

func truncateRunes(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	cut := maxChars
	for idx := maxChars - 1; idx >= int(float64(maxChars)*breakSearchRatio); idx-- {
		if unicode.IsSpace(runes[idx]) {
			cut = idx
			break
		}
	}

	truncated := strings.TrimSpace(string(runes[:cut]))
	if truncated == "" {
		truncated = strings.TrimSpace(string(runes[:maxChars]))
	}
	return truncated + "..."
}

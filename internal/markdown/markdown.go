// Package markdown turns post sources into HTML fragments and plain-text
// excerpts. Raw HTML is dropped and links to untrusted schemes are not linked.
package markdown

import (
	"html/template"
	"strings"

	md "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Options tune link handling. With an empty RootURL every absolute link is
// treated as external.
type Options struct {
	RootURL string
}

// parserExtensions leaves out AutoHeadingIDs so "# Hi" renders as a bare <h1>.
const parserExtensions = parser.CommonExtensions

func parse(source string) ast.Node {
	return parser.NewWithExtensions(parserExtensions).Parse([]byte(source))
}

// ToHTML renders post markdown. Raw HTML in the source is dropped. Only
// http, https, ftp, mailto and path-relative ("/", "./", "../") links stay
// links; anything else renders as its text. Fenced code is highlighted with
// chroma classes (see HighlightCSS) and off-site links open in a new tab.
func ToHTML(source string, opts Options) template.HTML {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	doc := parse(source)
	rewriteLinks(doc, strings.TrimRight(strings.TrimSpace(opts.RootURL), "/"))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags:          mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.Safelink,
		RenderNodeHook: renderCode,
	})
	return template.HTML(md.Render(doc, renderer))
}

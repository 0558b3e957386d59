package markdown

import (
	"bytes"
	"html"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown/ast"
)

var codeFormatter = chromahtml.New(chromahtml.WithClasses(true))

// highlightThemes maps a prefers-color-scheme value to a chroma style.
var highlightThemes = []struct {
	scheme string
	style  string
}{
	{scheme: "light", style: "github"},
	{scheme: "dark", style: "monokai"},
}

// HighlightCSS is the stylesheet for the classes emitted on highlighted code.
var HighlightCSS = sync.OnceValue(func() template.CSS {
	var out strings.Builder
	for _, theme := range highlightThemes {
		style := styles.Get(theme.style)
		if style == nil {
			style = styles.Fallback
		}

		var css bytes.Buffer
		if err := codeFormatter.WriteCSS(&css, style); err != nil {
			continue
		}
		out.WriteString("@media (prefers-color-scheme: " + theme.scheme + ") {\n")
		out.Write(css.Bytes())
		out.WriteString("}\n")
	}
	return template.CSS(out.String())
})

func renderCode(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	if !entering {
		return ast.GoToNext, false
	}

	switch code := node.(type) {
	case *ast.CodeBlock:
		writeCodeBlock(w, string(code.Literal), fenceLanguage(code.Info))
	case *ast.Code:
		_, _ = io.WriteString(w, `<code class="inline-code">`+html.EscapeString(string(code.Literal))+`</code>`)
	default:
		return ast.GoToNext, false
	}
	return ast.SkipChildren, true
}

func writeCodeBlock(w io.Writer, code string, language string) {
	iterator, err := lexerFor(language, code).Tokenise(nil, code)
	if err == nil {
		var buf bytes.Buffer
		if err = codeFormatter.Format(&buf, styles.Fallback, iterator); err == nil {
			_, _ = w.Write(buf.Bytes())
			return
		}
	}
	_, _ = io.WriteString(w, `<pre class="chroma"><code>`+html.EscapeString(code)+`</code></pre>`)
}

func lexerFor(language string, code string) chroma.Lexer {
	if language != "" {
		if lexer := lexers.Get(language); lexer != nil {
			return chroma.Coalesce(lexer)
		}
	}
	if lexer := lexers.Analyse(code); lexer != nil {
		return chroma.Coalesce(lexer)
	}
	return lexers.Fallback
}

func fenceLanguage(info []byte) string {
	fields := strings.Fields(string(info))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

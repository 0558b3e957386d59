package markdown

import (
	"strings"
	"testing"
)

func TestToHTML_RendersHeadings(t *testing.T) {
	html := string(ToHTML("# Hi", Options{}))

	if !strings.Contains(html, "<h1>Hi</h1>") {
		t.Fatalf("expected plain h1 heading, got %s", html)
	}
}

func TestToHTML_EmptyInput(t *testing.T) {
	if html := ToHTML("  \n ", Options{}); html != "" {
		t.Fatalf("expected empty output, got %q", html)
	}
}

func TestToHTML_ExternalLinksOpenInNewTab(t *testing.T) {
	html := string(ToHTML("[external](https://example.com/read)", Options{
		RootURL: "https://blog.example.org",
	}))

	if !strings.Contains(html, `href="https://example.com/read"`) {
		t.Fatalf("expected external href, got %s", html)
	}
	if !strings.Contains(html, `target="_blank"`) {
		t.Fatalf("expected target blank, got %s", html)
	}
	if !strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Fatalf("expected external rel attrs, got %s", html)
	}
}

func TestToHTML_NormalizesSameDomainAbsoluteLinks(t *testing.T) {
	html := string(ToHTML("[same](https://blog.example.org/posts/a?x=1#k)", Options{
		RootURL: "https://blog.example.org",
	}))

	if !strings.Contains(html, `href="/posts/a?x=1#k"`) {
		t.Fatalf("expected normalized same-domain href, got %s", html)
	}
	if strings.Contains(html, `target="_blank"`) {
		t.Fatalf("did not expect target blank for same-domain links, got %s", html)
	}
}

func TestToHTML_RelativeLinksStayInPlace(t *testing.T) {
	html := string(ToHTML("[other post](/posts/other)", Options{}))

	if !strings.Contains(html, `href="/posts/other"`) {
		t.Fatalf("expected relative href, got %s", html)
	}
	if strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Fatalf("did not expect rel attrs for relative links, got %s", html)
	}
}

func TestToHTML_SkipsRawHTML(t *testing.T) {
	html := string(ToHTML("hello <script>alert(1)</script>", Options{}))

	if strings.Contains(html, "<script>") {
		t.Fatalf("expected raw html to be skipped, got %s", html)
	}
}

func TestToHTML_HighlightsCodeBlocks(t *testing.T) {
	source := "```go\nfmt.Println(\"hello\")\n```"
	html := string(ToHTML(source, Options{}))

	if !strings.Contains(html, `class="chroma"`) {
		t.Fatalf("expected chroma class for fenced code block, got %s", html)
	}
	if !strings.Contains(html, "Println") {
		t.Fatalf("expected code content in rendered block, got %s", html)
	}
}

func TestToHTML_RendersInlineCodeClass(t *testing.T) {
	html := string(ToHTML("Use `go test ./...` now.", Options{}))

	if !strings.Contains(html, `<code class="inline-code">go test ./...</code>`) {
		t.Fatalf("expected inline code class, got %s", html)
	}
}

func TestExcerpt_StripsMarkdownSyntax(t *testing.T) {
	got := Excerpt("# Title\n\nSome **bold** text with a [link](https://example.com).", 300)

	if got != "Title Some bold text with a link." {
		t.Fatalf("unexpected excerpt %q", got)
	}
}

func TestExcerpt_TruncatesOnWordBoundary(t *testing.T) {
	got := Excerpt("alpha beta gamma delta", 12)
	if got != "alpha beta..." {
		t.Fatalf("expected graceful word truncation, got %q", got)
	}
}

func TestHighlightCSS_ContainsBothSchemes(t *testing.T) {
	css := string(HighlightCSS())

	if !strings.Contains(css, "prefers-color-scheme: light") || !strings.Contains(css, "prefers-color-scheme: dark") {
		t.Fatalf("expected light and dark media blocks, got %d bytes", len(css))
	}
}

func TestExcerpt_SkipsCodeAndImages(t *testing.T) {
	source := "Intro line.\n\n```go\nfmt.Println(1)\n```\n\n![diagram](/d.png)\n\n- first\n- second"

	if got := Excerpt(source, 300); got != "Intro line. first second" {
		t.Fatalf("unexpected excerpt %q", got)
	}
}

func TestToHTML_LookalikeDomainStaysExternal(t *testing.T) {
	html := string(ToHTML("[trap](https://blog.example.org.evil.test/x)", Options{
		RootURL: "https://blog.example.org",
	}))

	if !strings.Contains(html, `target="_blank"`) {
		t.Fatalf("expected lookalike domain to be treated as external, got %s", html)
	}
}

func TestToHTML_DoesNotLinkScriptSchemes(t *testing.T) {
	for _, source := range []string{
		"[x](javascript:alert(1))",
		"[x](JavaScript:alert(1))",
		"[x](data:text/html;base64,PHNjcmlwdD4=)",
	} {
		html := string(ToHTML(source, Options{}))

		if strings.Contains(strings.ToLower(html), "href=") {
			t.Fatalf("expected %q to render without a link, got %s", source, html)
		}
		if !strings.Contains(html, "x") {
			t.Fatalf("expected link text to survive for %q, got %s", source, html)
		}
	}
}

func TestToHTML_KeepsSafeLinks(t *testing.T) {
	html := string(ToHTML("[mail](mailto:me@example.com) and [web](https://example.com)", Options{}))

	if !strings.Contains(html, `href="mailto:me@example.com"`) || !strings.Contains(html, `href="https://example.com"`) {
		t.Fatalf("expected safe links to stay linked, got %s", html)
	}
}

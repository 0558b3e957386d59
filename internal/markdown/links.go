package markdown

import (
	"net/url"
	"strings"

	"github.com/gomarkdown/markdown/ast"
)

var externalLinkAttrs = []string{`target="_blank"`, `rel="noopener noreferrer"`}

func rewriteLinks(doc ast.Node, rootURL string) {
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		link, ok := node.(*ast.Link)
		if !entering || !ok {
			return ast.GoToNext
		}

		href, local := localHref(string(link.Destination), rootURL)
		link.Destination = []byte(href)
		if !local {
			link.AdditionalAttributes = append(withoutTargetAttrs(link.AdditionalAttributes), externalLinkAttrs...)
		}
		return ast.GoToNext
	})
}

// localHref strips rootURL from absolute links to this blog. Relative and
// fragment links are local as written.
func localHref(href string, rootURL string) (string, bool) {
	if strings.HasPrefix(href, "#") || (strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")) {
		return href, true
	}
	if rootURL == "" || !strings.HasPrefix(href, rootURL) {
		return href, false
	}

	rest := href[len(rootURL):]
	if rest != "" && !strings.ContainsAny(rest[:1], "/?#") {
		// https://blog.example.org.evil.com shares the prefix only.
		return href, false
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return href, true
	}
	local := &url.URL{Path: parsed.Path, RawQuery: parsed.RawQuery, Fragment: parsed.Fragment}
	if local.Path == "" {
		local.Path = "/"
	}
	return local.String(), true
}

func withoutTargetAttrs(attrs []string) []string {
	out := attrs[:0:0]
	for _, attr := range attrs {
		name := strings.ToLower(strings.TrimSpace(attr))
		if strings.HasPrefix(name, "target=") || strings.HasPrefix(name, "rel=") {
			continue
		}
		out = append(out, attr)
	}
	return out
}

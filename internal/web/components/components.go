// Package components renders page views as templ components backed by
// embedded html/template files.
package components

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"minblog/internal/markdown"
	"minblog/internal/web/appcore"

	"github.com/a-h/templ"
)

const datastarScriptURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("components").ParseFS(templateFS, "templates/*.html"))

type layoutData struct {
	Title          string
	ShowAdminLink  bool
	LoadsDatastar  bool
	DatastarScript string
	PostsURL       string
	AdminURL       string
	HighlightCSS   template.CSS
	Body           template.HTML
}

// RootLayout wraps child in the document chrome shared by every page.
func RootLayout(view appcore.RootLayoutView, child templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := templ.ToGoHTML(ctx, child)
		if err != nil {
			return fmt.Errorf("render layout child: %w", err)
		}

		return templates.ExecuteTemplate(w, "layout", layoutData{
			Title:          view.LayoutPageTitle(),
			ShowAdminLink:  view.LayoutShowAdminLink(),
			LoadsDatastar:  view.LayoutLoadsDatastar(),
			DatastarScript: datastarScriptURL,
			PostsURL:       appcore.PostsURL(),
			AdminURL:       appcore.AdminIndexURL(),
			HighlightCSS:   markdown.HighlightCSS(),
			Body:           body,
		})
	})
}

func PostsPage(view appcore.PostsPageView) templ.Component {
	return named("posts", view)
}

func PostPage(view appcore.PostPageView) templ.Component {
	return named("post", view)
}

func AdminIndexPage(view appcore.AdminIndexView) templ.Component {
	return named("admin_index", view)
}

func AdminPostPage(view appcore.AdminPostView) templ.Component {
	return named("admin_post", view)
}

// MarkdownPreview is both embedded in the admin form and patched over SSE;
// its root element carries view.SelectorID.
func MarkdownPreview(view appcore.PreviewView) templ.Component {
	return named("preview", view)
}

func NotFoundPage(view appcore.NotFoundView) templ.Component {
	return named("not_found", view)
}

func named(name string, data interface{}) templ.Component {
	return templ.FromGoHTML(templates.Lookup(name), data)
}

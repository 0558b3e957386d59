package appcore

import (
	"html/template"
	"strings"

	"minblog/framework"
	"minblog/framework/router"
	"minblog/internal/markdown"
	"minblog/internal/posts"
)

const excerptChars = 180

// RootLayoutView is what the shared page chrome needs from every page view.
type RootLayoutView interface {
	LayoutPageTitle() string
	LayoutShowAdminLink() bool
	LayoutLoadsDatastar() bool
}

type PostSummary struct {
	Slug    string
	Title   string
	Excerpt string
	URL     string
	EditURL string
}

type PostsPageView struct {
	PageTitle     string
	Posts         []PostSummary
	ShowAdminLink bool
}

func (v PostsPageView) LayoutPageTitle() string { return v.PageTitle }
func (v PostsPageView) LayoutShowAdminLink() bool { return v.ShowAdminLink }
func (v PostsPageView) LayoutLoadsDatastar() bool { return false }

type PostPageView struct {
	PageTitle string
	Slug      string
	Title     string
	BodyHTML  template.HTML
}

func (v PostPageView) LayoutPageTitle() string { return v.PageTitle }
func (v PostPageView) LayoutShowAdminLink() bool { return false }
func (v PostPageView) LayoutLoadsDatastar() bool { return false }

type AdminIndexView struct {
	PageTitle string
	Posts     []PostSummary
	CreateURL string
}

func (v AdminIndexView) LayoutPageTitle() string { return v.PageTitle }
func (v AdminIndexView) LayoutShowAdminLink() bool { return false }
func (v AdminIndexView) LayoutLoadsDatastar() bool { return false }

// AdminPostView drives both the create and the edit form. Form holds the
// values to echo back; Errors is empty on first render.
type AdminPostView struct {
	PageTitle   string
	RouteSlug   string
	IsNew       bool
	Form        posts.PostForm
	Errors      posts.FieldErrors
	ActionURL   string
	PreviewURL  string
	PreviewHTML template.HTML
	BackURL     string

	// SavedPostURL links to the public page of an existing post.
	SavedPostURL string
}

func (v AdminPostView) LayoutPageTitle() string { return v.PageTitle }
func (v AdminPostView) LayoutShowAdminLink() bool { return false }
func (v AdminPostView) LayoutLoadsDatastar() bool { return true }

func (v AdminPostView) SubmitLabel() string {
	if v.IsNew {
		return "Create post"
	}
	return "Update post"
}

func (v AdminPostView) SubmitIntent() string {
	if v.IsNew {
		return posts.IntentCreate
	}
	return posts.IntentUpdate
}

func (v AdminPostView) DeleteIntent() string {
	return posts.IntentDelete
}

func (v AdminPostView) PreviewFragment() PreviewView {
	return PreviewView{SelectorID: PreviewSelectorID, HTML: v.PreviewHTML}
}

type PreviewView struct {
	SelectorID string
	HTML       template.HTML
}

type NotFoundView struct {
	PageTitle string
	Message   string
	BackURL   string
	BackLabel string
}

func (v NotFoundView) LayoutPageTitle() string { return v.PageTitle }
func (v NotFoundView) LayoutShowAdminLink() bool { return false }
func (v NotFoundView) LayoutLoadsDatastar() bool { return false }

// NewNotFoundView picks the not-found message by the route that failed to
// resolve. Unmatched paths get the generic message.
func NewNotFoundView(notFoundContext framework.NotFoundContext) NotFoundView {
	view := NotFoundView{
		PageTitle: "404 Not Found",
		Message:   "Nothing lives at " + notFoundContext.RequestPath,
		BackURL:   PostsURL(),
		BackLabel: "All posts",
	}

	switch router.NormalizeRouteID(notFoundContext.MatchedRoutePattern) {
	case RouteAdminPost, RouteAdminPostPreview:
		slug := slugFromPath(notFoundContext.MatchedRoutePattern, notFoundContext.RequestPath)
		view.Message = "Nooooooooooo. This slug " + slug + " doesn't exist"
		view.BackURL = AdminIndexURL()
		view.BackLabel = "Back to admin"
	case RoutePost:
		slug := slugFromPath(notFoundContext.MatchedRoutePattern, notFoundContext.RequestPath)
		view.Message = "No post with slug " + slug
	}
	return view
}

func slugFromPath(pattern string, path string) string {
	params, ok := router.MatchPathPattern(pattern, path)
	if !ok {
		return ""
	}
	return strings.TrimSpace(params["slug"])
}

func newPostSummaries(list []posts.Post) []PostSummary {
	out := make([]PostSummary, 0, len(list))
	for _, post := range list {
		out = append(out, PostSummary{
			Slug:    post.Slug,
			Title:   post.Title,
			Excerpt: markdown.Excerpt(post.Markdown, excerptChars),
			URL:     PostURL(post.Slug),
			EditURL: AdminPostURL(post.Slug),
		})
	}
	return out
}

func newAdminPostView(routeSlug string, form posts.PostForm, fieldErrs posts.FieldErrors, preview template.HTML) AdminPostView {
	isNew := routeSlug == posts.CreateSlug
	view := AdminPostView{
		PageTitle:   "New post",
		RouteSlug:   routeSlug,
		IsNew:       isNew,
		Form:        form,
		Errors:      fieldErrs,
		ActionURL:   AdminPostURL(routeSlug),
		PreviewURL:  AdminPreviewURL(routeSlug),
		PreviewHTML: preview,
		BackURL:     AdminIndexURL(),
	}
	if !isNew {
		view.PageTitle = "Edit: " + routeSlug
		view.SavedPostURL = PostURL(routeSlug)
	}
	return view
}

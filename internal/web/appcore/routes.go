package appcore

import (
	"net/url"
	"strings"

	"minblog/internal/posts"
)

// Route IDs, in the file-system style understood by framework/router.
const (
	RoutePosts            = "posts"
	RoutePost             = "posts/[slug]"
	RouteAdminIndex       = "posts/admin"
	RouteAdminPost        = "posts/admin/[slug]"
	RouteAdminPostPreview = "posts/admin/[slug]/preview"

	AdminPathPrefix   = "/posts/admin"
	PreviewSelectorID = "markdown-preview"
)

func PostsURL() string {
	return "/posts"
}

func PostURL(slug string) string {
	return "/posts/" + escapeSlug(slug)
}

func AdminIndexURL() string {
	return AdminPathPrefix
}

func AdminPostURL(slug string) string {
	return AdminPathPrefix + "/" + escapeSlug(slug)
}

func AdminCreateURL() string {
	return AdminPostURL(posts.CreateSlug)
}

func AdminPreviewURL(slug string) string {
	return AdminPostURL(slug) + "/preview"
}

func escapeSlug(slug string) string {
	return url.PathEscape(strings.TrimSpace(slug))
}

package web

import (
	"minblog/framework"
	"minblog/internal/web/appcore"
	r_posts "minblog/internal/web/appcore/resolvers/posts"
	r_posts_admin "minblog/internal/web/appcore/resolvers/posts/admin"
	r_posts_admin_param_slug "minblog/internal/web/appcore/resolvers/posts/admin/param_slug"
	r_posts_admin_param_slug_preview "minblog/internal/web/appcore/resolvers/posts/admin/param_slug/preview"
	r_posts_param_slug "minblog/internal/web/appcore/resolvers/posts/param_slug"
	"minblog/internal/web/components"

	"github.com/a-h/templ"
)

type RouteResolvers struct {
	Posts            r_posts.RouteResolver
	Post             r_posts_param_slug.RouteResolver
	AdminIndex       r_posts_admin.RouteResolver
	AdminPost        r_posts_admin_param_slug.RouteResolver
	AdminPostPreview r_posts_admin_param_slug_preview.RouteResolver
}

func NewRouteResolvers() RouteResolvers {
	return RouteResolvers{
		Posts:            r_posts.Resolver{},
		Post:             r_posts_param_slug.Resolver{},
		AdminIndex:       r_posts_admin.Resolver{},
		AdminPost:        r_posts_admin_param_slug.Resolver{},
		AdminPostPreview: r_posts_admin_param_slug_preview.Resolver{},
	}
}

// Handlers maps every route ID to its page, action or live module. Order is
// irrelevant: the engine's router resolves static segments before params.
func Handlers(resolvers RouteResolvers) []framework.RouteHandler[*appcore.Context] {
	return []framework.RouteHandler[*appcore.Context]{
		framework.PageOnlyRouteHandler[*appcore.Context, r_posts.Params, r_posts.PageView]{
			Page: framework.PageModule[*appcore.Context, r_posts.Params, r_posts.PageView]{
				Pattern:     appcore.RoutePosts,
				ParseParams: framework.ExactPath(appcore.RoutePosts),
				Load:        resolvers.Posts.ResolvePage,
				Render:      components.PostsPage,
				Layouts:     rootLayouts[r_posts.PageView](),
			},
		},
		framework.PageOnlyRouteHandler[*appcore.Context, r_posts_param_slug.Params, r_posts_param_slug.PageView]{
			Page: framework.PageModule[*appcore.Context, r_posts_param_slug.Params, r_posts_param_slug.PageView]{
				Pattern:     appcore.RoutePost,
				ParseParams: framework.SlugPath(appcore.RoutePost),
				Load:        resolvers.Post.ResolvePage,
				Render:      components.PostPage,
				Layouts:     rootLayouts[r_posts_param_slug.PageView](),
			},
		},
		framework.PageOnlyRouteHandler[*appcore.Context, r_posts_admin.Params, r_posts_admin.PageView]{
			Page: framework.PageModule[*appcore.Context, r_posts_admin.Params, r_posts_admin.PageView]{
				Pattern:     appcore.RouteAdminIndex,
				ParseParams: framework.ExactPath(appcore.RouteAdminIndex),
				Load:        resolvers.AdminIndex.ResolvePage,
				Render:      components.AdminIndexPage,
				Layouts:     rootLayouts[r_posts_admin.PageView](),
				NoStore:     true,
			},
		},
		framework.PageActionRouteHandler[*appcore.Context, r_posts_admin_param_slug.Params, r_posts_admin_param_slug.PageView]{
			Page: framework.PageModule[*appcore.Context, r_posts_admin_param_slug.Params, r_posts_admin_param_slug.PageView]{
				Pattern:     appcore.RouteAdminPost,
				ParseParams: framework.SlugPath(appcore.RouteAdminPost),
				Load:        resolvers.AdminPost.ResolvePage,
				Render:      components.AdminPostPage,
				Layouts:     rootLayouts[r_posts_admin_param_slug.PageView](),
				NoStore:     true,
			},
			Action: framework.ActionModule[*appcore.Context, r_posts_admin_param_slug.Params, r_posts_admin_param_slug.PageView]{
				Submit: resolvers.AdminPost.SubmitAction,
			},
		},
		framework.LiveRouteHandler[
			*appcore.Context,
			r_posts_admin_param_slug_preview.Params,
			r_posts_admin_param_slug_preview.LiveState,
			r_posts_admin_param_slug_preview.View,
		]{
			Live: framework.LiveModule[
				*appcore.Context,
				r_posts_admin_param_slug_preview.Params,
				r_posts_admin_param_slug_preview.LiveState,
				r_posts_admin_param_slug_preview.View,
			]{
				Pattern:     appcore.RouteAdminPostPreview,
				ParseParams: framework.SlugPath(appcore.RouteAdminPostPreview),
				ParseState:  resolvers.AdminPostPreview.ParseLiveState,
				Load:        resolvers.AdminPostPreview.ResolveLive,
				Render:      components.MarkdownPreview,
				SelectorID:  appcore.PreviewSelectorID,
			},
		},
	}
}

func rootLayouts[VM appcore.RootLayoutView]() []framework.LayoutRenderer[VM] {
	return []framework.LayoutRenderer[VM]{
		func(view VM, child templ.Component) templ.Component {
			return components.RootLayout(view, child)
		},
	}
}

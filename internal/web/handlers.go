package web

import (
	"fmt"
	"log"
	"net/http"

	"minblog/framework"
	"minblog/framework/httpserver"
	"minblog/internal/config"
	"minblog/internal/markdown"
	"minblog/internal/posts"
	"minblog/internal/viewer"
	"minblog/internal/web/appcore"
	"minblog/internal/web/components"

	"github.com/a-h/templ"
)

// NewHandler wires the blog routes onto the framework server. Admin routes
// are wrapped by the viewer's guard, which is a pass-through unless admin
// enforcement is configured.
func NewHandler(cfg config.Config, store posts.Store, admin *viewer.Resolver) (http.Handler, error) {
	appCtx := appcore.NewContext(store, admin, markdown.Options{RootURL: cfg.RootURL})

	policies := httpserver.DefaultCachePolicies()
	if cfg.CacheHTML != "" {
		policies.HTML = cfg.CacheHTML
	}

	handler, err := httpserver.New(httpserver.Config[*appcore.Context]{
		AppContext: appCtx,
		Handlers:   Handlers(NewRouteResolvers()),
		Static: httpserver.StaticMount{
			URLPrefix: "/static/",
			Dir:       cfg.StaticDir,
		},
		CachePolicies:   policies,
		IsNotFoundError: appcore.IsNotFoundError,
		NotFoundPage:    notFoundPage,
		LogServerError:  logServerError,
		LogRequests:     cfg.LogRequests,
		Redirects: map[string]string{
			"/": appcore.PostsURL(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create blog server: %w", err)
	}

	return admin.RequireAdmin(appcore.AdminPathPrefix, handler), nil
}

func notFoundPage(notFoundContext framework.NotFoundContext) templ.Component {
	view := appcore.NewNotFoundView(notFoundContext)
	return components.RootLayout(view, components.NotFoundPage(view))
}

func logServerError(err error) {
	log.Printf("blog server error: %v", err)
}

package posts

import (
	"context"
	"net/http"

	"minblog/framework"
	"minblog/internal/web/appcore"
)

type PageView = appcore.PostsPageView

type Params = framework.EmptyParams

type RouteResolver interface {
	ResolvePage(ctx context.Context, appCtx *appcore.Context, r *http.Request, params Params) (PageView, error)
}

var _ RouteResolver = (*Resolver)(nil)

package param_slug

import (
	"context"
	"net/http"

	"minblog/framework"
	"minblog/internal/web/appcore"
)

type PageView = appcore.PostPageView

type Params = framework.SlugParams

type RouteResolver interface {
	ResolvePage(ctx context.Context, appCtx *appcore.Context, r *http.Request, params Params) (PageView, error)
}

var _ RouteResolver = (*Resolver)(nil)

package param_slug

import (
	"context"
	"net/http"

	"minblog/framework"
	"minblog/internal/web/appcore"
)

type PageView = appcore.AdminPostView

type Params = framework.SlugParams

type ActionResult = framework.ActionResult[PageView]

// RouteResolver serves the admin form: GET renders it, POST submits it.
type RouteResolver interface {
	ResolvePage(ctx context.Context, appCtx *appcore.Context, r *http.Request, params Params) (PageView, error)
	SubmitAction(ctx context.Context, appCtx *appcore.Context, r *http.Request, params Params) (ActionResult, error)
}

var _ RouteResolver = (*Resolver)(nil)

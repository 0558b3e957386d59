package preview

import (
	"context"
	"net/http"

	"minblog/framework"
	"minblog/internal/web/appcore"
)

type View = appcore.PreviewView

type LiveState = appcore.PreviewSignals

type Params = framework.SlugParams

type RouteResolver interface {
	ParseLiveState(r *http.Request) (LiveState, error)
	ResolveLive(
		ctx context.Context,
		appCtx *appcore.Context,
		r *http.Request,
		params Params,
		state LiveState,
	) (View, error)
}

var _ RouteResolver = (*Resolver)(nil)

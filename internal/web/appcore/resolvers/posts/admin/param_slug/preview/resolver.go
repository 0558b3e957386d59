package preview

import (
	"context"
	"net/http"

	"minblog/internal/web/appcore"
)

type Resolver struct{}

func (Resolver) ParseLiveState(r *http.Request) (LiveState, error) {
	return appcore.ParsePreviewState(r)
}

func (Resolver) ResolveLive(
	ctx context.Context,
	appCtx *appcore.Context,
	r *http.Request,
	params Params,
	state LiveState,
) (View, error) {
	return appcore.LoadPreview(ctx, appCtx, r, params, state)
}

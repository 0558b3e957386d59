package admin

import (
	"context"
	"net/http"

	"minblog/internal/web/appcore"
)

type Resolver struct{}

func (Resolver) ResolvePage(
	ctx context.Context,
	appCtx *appcore.Context,
	r *http.Request,
	params Params,
) (PageView, error) {
	return appcore.LoadAdminIndexPage(ctx, appCtx, r, params)
}

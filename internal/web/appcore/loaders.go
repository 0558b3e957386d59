package appcore

import (
	"context"
	"net/http"
	"strings"

	"minblog/framework"
	"minblog/internal/posts"

	"github.com/starfederation/datastar-go/datastar"
)

func LoadPostsPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ framework.EmptyParams,
) (PostsPageView, error) {
	store, err := postStore(appCtx)
	if err != nil {
		return PostsPageView{}, err
	}

	list, err := store.ListPosts(ctx)
	if err != nil {
		return PostsPageView{}, err
	}

	return PostsPageView{
		PageTitle:     "Posts",
		Posts:         newPostSummaries(list),
		ShowAdminLink: appCtx.isAdmin(r),
	}, nil
}

func LoadPostPage(
	ctx context.Context,
	appCtx *Context,
	_ *http.Request,
	params framework.SlugParams,
) (PostPageView, error) {
	store, err := postStore(appCtx)
	if err != nil {
		return PostPageView{}, err
	}

	post, err := store.GetPost(ctx, params.Slug)
	if err != nil {
		return PostPageView{}, err
	}

	return PostPageView{
		PageTitle: post.Title,
		Slug:      post.Slug,
		Title:     post.Title,
		BodyHTML:  appCtx.renderMarkdown(post.Markdown),
	}, nil
}

func LoadAdminIndexPage(
	ctx context.Context,
	appCtx *Context,
	_ *http.Request,
	_ framework.EmptyParams,
) (AdminIndexView, error) {
	store, err := postStore(appCtx)
	if err != nil {
		return AdminIndexView{}, err
	}

	list, err := store.ListPosts(ctx)
	if err != nil {
		return AdminIndexView{}, err
	}

	return AdminIndexView{
		PageTitle: "Admin",
		Posts:     newPostSummaries(list),
		CreateURL: AdminCreateURL(),
	}, nil
}

// LoadAdminPostPage renders an empty form for the create slug and the stored
// post otherwise. A missing post surfaces as posts.ErrNotFound.
func LoadAdminPostPage(
	ctx context.Context,
	appCtx *Context,
	_ *http.Request,
	params framework.SlugParams,
) (AdminPostView, error) {
	if params.Slug == posts.CreateSlug {
		return newAdminPostView(params.Slug, posts.PostForm{Intent: posts.IntentCreate}, posts.FieldErrors{}, ""), nil
	}

	store, err := postStore(appCtx)
	if err != nil {
		return AdminPostView{}, err
	}

	post, err := store.GetPost(ctx, params.Slug)
	if err != nil {
		return AdminPostView{}, err
	}

	form := posts.PostForm{
		Intent:   posts.IntentUpdate,
		Title:    post.Title,
		Slug:     post.Slug,
		Markdown: post.Markdown,
	}
	return newAdminPostView(params.Slug, form, posts.FieldErrors{}, appCtx.renderMarkdown(post.Markdown)), nil
}

// PreviewSignals mirrors the datastar signals bound on the admin form.
type PreviewSignals struct {
	Markdown string `json:"markdown"`
}

func ParsePreviewState(r *http.Request) (PreviewSignals, error) {
	var state PreviewSignals
	if r.Method == http.MethodGet && strings.TrimSpace(r.URL.Query().Get(datastar.DatastarKey)) == "" {
		return state, nil
	}
	if err := datastar.ReadSignals(r, &state); err != nil {
		return PreviewSignals{}, err
	}
	return state, nil
}

// LoadPreview renders draft markdown without touching the store.
func LoadPreview(
	_ context.Context,
	appCtx *Context,
	_ *http.Request,
	_ framework.SlugParams,
	state PreviewSignals,
) (PreviewView, error) {
	return PreviewView{
		SelectorID: PreviewSelectorID,
		HTML:       appCtx.renderMarkdown(state.Markdown),
	}, nil
}

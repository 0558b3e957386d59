package appcore

import (
	"context"
	"errors"
	"log"
	"net/http"

	"minblog/framework"
	"minblog/internal/posts"
)

const maxFormBytes = 1 << 20

const slugTakenMessage = "Slug is already taken"

// SubmitAdminPost handles the admin form. A delete intent removes the post
// addressed by the route; everything else is a save, which creates for the
// create slug and updates the routed post otherwise. The store is only
// called with a fully valid form.
func SubmitAdminPost(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params framework.SlugParams,
) (framework.ActionResult[AdminPostView], error) {
	store, err := postStore(appCtx)
	if err != nil {
		return framework.ActionResult[AdminPostView]{}, err
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return framework.ActionResult[AdminPostView]{}, framework.BadRequest("invalid form body", err)
	}
	form := posts.ParsePostForm(r.PostForm)

	if form.IsDelete() {
		if params.Slug == posts.CreateSlug {
			return framework.ActionResult[AdminPostView]{}, framework.BadRequest("nothing to delete", nil)
		}
		if err := store.DeletePost(ctx, params.Slug); err != nil {
			return framework.ActionResult[AdminPostView]{}, err
		}
		log.Printf("admin: deleted post %q", params.Slug)
		return framework.Redirect[AdminPostView](AdminIndexURL()), nil
	}

	post, fieldErrs := form.Validate()
	if fieldErrs.Any() {
		return rerenderForm(appCtx, params.Slug, form, fieldErrs), nil
	}

	if params.Slug == posts.CreateSlug {
		err = store.CreatePost(ctx, post)
	} else {
		err = store.UpdatePost(ctx, post, params.Slug)
	}
	if errors.Is(err, posts.ErrSlugTaken) {
		fieldErrs.Slug = slugTakenMessage
		return rerenderForm(appCtx, params.Slug, form, fieldErrs), nil
	}
	if err != nil {
		return framework.ActionResult[AdminPostView]{}, err
	}

	log.Printf("admin: saved post %q", post.Slug)
	return framework.Redirect[AdminPostView](AdminIndexURL()), nil
}

func rerenderForm(
	appCtx *Context,
	routeSlug string,
	form posts.PostForm,
	fieldErrs posts.FieldErrors,
) framework.ActionResult[AdminPostView] {
	view := newAdminPostView(routeSlug, form, fieldErrs, appCtx.renderMarkdown(form.Markdown))
	return framework.Rerender(view, http.StatusUnprocessableEntity)
}

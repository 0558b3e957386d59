package appcore

import (
	"errors"
	"html/template"
	"net/http"

	"minblog/internal/markdown"
	"minblog/internal/posts"
)

var errPostStoreUnavailable = errors.New("post store unavailable")

// AdminChecker reports whether a request comes from the blog's admin.
type AdminChecker interface {
	IsAdmin(r *http.Request) bool
}

type Context struct {
	store    posts.Store
	admin    AdminChecker
	markdown markdown.Options
}

func NewContext(store posts.Store, admin AdminChecker, markdownOpts markdown.Options) *Context {
	return &Context{
		store:    store,
		admin:    admin,
		markdown: markdownOpts,
	}
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, posts.ErrNotFound)
}

func postStore(appCtx *Context) (posts.Store, error) {
	if appCtx == nil || appCtx.store == nil {
		return nil, errPostStoreUnavailable
	}
	return appCtx.store, nil
}

func (c *Context) isAdmin(r *http.Request) bool {
	if c == nil || c.admin == nil {
		return true
	}
	return c.admin.IsAdmin(r)
}

func (c *Context) renderMarkdown(source string) template.HTML {
	var opts markdown.Options
	if c != nil {
		opts = c.markdown
	}
	return markdown.ToHTML(source, opts)
}

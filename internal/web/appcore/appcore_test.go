package appcore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"minblog/framework"
	"minblog/internal/markdown"
	"minblog/internal/posts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	posts   map[string]posts.Post
	calls   []string
	failErr error
}

func newFakeStore(list ...posts.Post) *fakeStore {
	store := &fakeStore{posts: make(map[string]posts.Post)}
	for _, post := range list {
		store.posts[post.Slug] = post
	}
	return store
}

func (s *fakeStore) ListPosts(context.Context) ([]posts.Post, error) {
	s.calls = append(s.calls, "list")
	out := make([]posts.Post, 0, len(s.posts))
	for _, post := range s.posts {
		out = append(out, post)
	}
	return out, s.failErr
}

func (s *fakeStore) GetPost(_ context.Context, slug string) (posts.Post, error) {
	s.calls = append(s.calls, "get")
	post, ok := s.posts[slug]
	if !ok {
		return posts.Post{}, posts.ErrNotFound
	}
	return post, nil
}

func (s *fakeStore) CreatePost(_ context.Context, post posts.Post) error {
	s.calls = append(s.calls, "create")
	if _, ok := s.posts[post.Slug]; ok {
		return posts.ErrSlugTaken
	}
	s.posts[post.Slug] = post
	return nil
}

func (s *fakeStore) UpdatePost(_ context.Context, post posts.Post, originalSlug string) error {
	s.calls = append(s.calls, "update")
	if _, ok := s.posts[originalSlug]; !ok {
		return posts.ErrNotFound
	}
	if _, ok := s.posts[post.Slug]; ok && post.Slug != originalSlug {
		return posts.ErrSlugTaken
	}
	delete(s.posts, originalSlug)
	s.posts[post.Slug] = post
	return nil
}

func (s *fakeStore) DeletePost(_ context.Context, slug string) error {
	s.calls = append(s.calls, "delete")
	if _, ok := s.posts[slug]; !ok {
		return posts.ErrNotFound
	}
	delete(s.posts, slug)
	return nil
}

type staticAdmin bool

func (a staticAdmin) IsAdmin(*http.Request) bool { return bool(a) }

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/posts/admin/x", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoadPostPageRendersMarkdown(t *testing.T) {
	store := newFakeStore(posts.Post{Slug: "hello", Title: "Hello", Markdown: "# Hi"})
	appCtx := NewContext(store, nil, markdown.Options{})

	view, err := LoadPostPage(context.Background(), appCtx, nil, framework.SlugParams{Slug: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "Hello", view.Title)
	assert.Contains(t, string(view.BodyHTML), "<h1>Hi</h1>")
}

func TestLoadPostPageMissingIsNotFound(t *testing.T) {
	appCtx := NewContext(newFakeStore(), nil, markdown.Options{})

	_, err := LoadPostPage(context.Background(), appCtx, nil, framework.SlugParams{Slug: "nope"})

	assert.True(t, IsNotFoundError(err))
}

func TestLoadPostsPageAdminLink(t *testing.T) {
	store := newFakeStore(posts.Post{Slug: "a", Title: "A", Markdown: "alpha"})
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)

	view, err := LoadPostsPage(context.Background(), NewContext(store, staticAdmin(false), markdown.Options{}), req, framework.EmptyParams{})
	require.NoError(t, err)
	assert.False(t, view.ShowAdminLink)
	require.Len(t, view.Posts, 1)
	assert.Equal(t, "/posts/a", view.Posts[0].URL)
	assert.Equal(t, "alpha", view.Posts[0].Excerpt)

	view, err = LoadPostsPage(context.Background(), NewContext(store, staticAdmin(true), markdown.Options{}), req, framework.EmptyParams{})
	require.NoError(t, err)
	assert.True(t, view.ShowAdminLink)
}

func TestLoadAdminPostPageCreateSkipsStore(t *testing.T) {
	store := newFakeStore()

	view, err := LoadAdminPostPage(context.Background(), NewContext(store, nil, markdown.Options{}), nil, framework.SlugParams{Slug: posts.CreateSlug})

	require.NoError(t, err)
	assert.True(t, view.IsNew)
	assert.Equal(t, "/posts/admin/create", view.ActionURL)
	assert.Empty(t, store.calls)
}

func TestSubmitAdminPostInvalidFormNeverCallsStore(t *testing.T) {
	store := newFakeStore()
	appCtx := NewContext(store, nil, markdown.Options{})

	result, err := SubmitAdminPost(context.Background(), appCtx, formRequest(url.Values{"title": {"Only title"}}), framework.SlugParams{Slug: posts.CreateSlug})

	require.NoError(t, err)
	assert.Empty(t, result.RedirectTo)
	assert.Equal(t, http.StatusUnprocessableEntity, result.StatusCode)
	assert.Equal(t, posts.FieldErrors{Slug: "Slug is required", Markdown: "Markdown is required"}, result.View.Errors)
	assert.Equal(t, "Only title", result.View.Form.Title)
	assert.Empty(t, store.calls)
}

func TestSubmitAdminPostInvalidUpdateKeepsStoredPost(t *testing.T) {
	original := posts.Post{Slug: "hello", Title: "Hello", Markdown: "# Hi"}
	store := newFakeStore(original)
	appCtx := NewContext(store, nil, markdown.Options{})

	result, err := SubmitAdminPost(context.Background(), appCtx, formRequest(url.Values{
		"intent": {"update"}, "title": {""}, "slug": {" "}, "markdown": {""},
	}), framework.SlugParams{Slug: "hello"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, result.StatusCode)
	assert.False(t, result.View.IsNew)
	assert.Equal(t, posts.FieldErrors{
		Title:    "Title is required",
		Slug:     "Slug is required",
		Markdown: "Markdown is required",
	}, result.View.Errors)
	assert.Empty(t, store.calls)
	assert.Equal(t, original, store.posts["hello"])
}

func TestSubmitAdminPostCreateAndUpdate(t *testing.T) {
	store := newFakeStore()
	appCtx := NewContext(store, nil, markdown.Options{})

	result, err := SubmitAdminPost(context.Background(), appCtx, formRequest(url.Values{
		"intent": {"create"}, "title": {"Hello"}, "slug": {"hello"}, "markdown": {"# Hi"},
	}), framework.SlugParams{Slug: posts.CreateSlug})
	require.NoError(t, err)
	assert.Equal(t, "/posts/admin", result.RedirectTo)

	result, err = SubmitAdminPost(context.Background(), appCtx, formRequest(url.Values{
		"intent": {"update"}, "title": {"Hello 2"}, "slug": {"hello-2"}, "markdown": {"# Hi"},
	}), framework.SlugParams{Slug: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "/posts/admin", result.RedirectTo)

	assert.Equal(t, []string{"create", "update"}, store.calls)
	assert.Contains(t, store.posts, "hello-2")
	assert.NotContains(t, store.posts, "hello")
}

func TestSubmitAdminPostSlugTakenBecomesFieldError(t *testing.T) {
	store := newFakeStore(posts.Post{Slug: "taken", Title: "T", Markdown: "t"})
	appCtx := NewContext(store, nil, markdown.Options{})

	result, err := SubmitAdminPost(context.Background(), appCtx, formRequest(url.Values{
		"title": {"New"}, "slug": {"taken"}, "markdown": {"n"},
	}), framework.SlugParams{Slug: posts.CreateSlug})

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, result.StatusCode)
	assert.Equal(t, "Slug is already taken", result.View.Errors.Slug)
}

func TestSubmitAdminPostDelete(t *testing.T) {
	store := newFakeStore(posts.Post{Slug: "gone", Title: "G", Markdown: "g"})
	appCtx := NewContext(store, nil, markdown.Options{})

	result, err := SubmitAdminPost(context.Background(), appCtx, formRequest(url.Values{"intent": {"delete"}}), framework.SlugParams{Slug: "gone"})
	require.NoError(t, err)
	assert.Equal(t, "/posts/admin", result.RedirectTo)
	assert.Empty(t, store.posts)

	_, err = SubmitAdminPost(context.Background(), appCtx, formRequest(url.Values{"intent": {"delete"}}), framework.SlugParams{Slug: "gone"})
	assert.True(t, IsNotFoundError(err))

	_, err = SubmitAdminPost(context.Background(), appCtx, formRequest(url.Values{"intent": {"delete"}}), framework.SlugParams{Slug: posts.CreateSlug})
	var badRequest *framework.BadRequestError
	assert.True(t, errors.As(err, &badRequest))
}

func TestParsePreviewState(t *testing.T) {
	empty, err := ParsePreviewState(httptest.NewRequest(http.MethodGet, "/posts/admin/create/preview", nil))
	require.NoError(t, err)
	assert.Empty(t, empty.Markdown)

	query := url.Values{"datastar": {`{"markdown":"*hi*"}`}}
	fromQuery, err := ParsePreviewState(httptest.NewRequest(http.MethodGet, "/posts/admin/create/preview?"+query.Encode(), nil))
	require.NoError(t, err)
	assert.Equal(t, "*hi*", fromQuery.Markdown)

	_, err = ParsePreviewState(httptest.NewRequest(http.MethodPost, "/posts/admin/create/preview", strings.NewReader("{")))
	assert.Error(t, err)
}

func TestNewNotFoundView(t *testing.T) {
	admin := NewNotFoundView(framework.NotFoundContext{
		RequestPath:         "/posts/admin/does-not-exist",
		MatchedRoutePattern: RouteAdminPost,
		Source:              framework.NotFoundSourcePageLoad,
	})
	assert.Equal(t, "Nooooooooooo. This slug does-not-exist doesn't exist", admin.Message)
	assert.Equal(t, "/posts/admin", admin.BackURL)

	public := NewNotFoundView(framework.NotFoundContext{
		RequestPath:         "/posts/missing",
		MatchedRoutePattern: RoutePost,
	})
	assert.Equal(t, "No post with slug missing", public.Message)

	unmatched := NewNotFoundView(framework.NotFoundContext{
		RequestPath: "/elsewhere",
		Source:      framework.NotFoundSourceUnmatchedRoute,
	})
	assert.Equal(t, "Nothing lives at /elsewhere", unmatched.Message)
}

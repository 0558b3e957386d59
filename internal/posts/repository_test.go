package posts

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"minblog/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	ctx := context.Background()
	db, err := storage.Open(ctx, storage.Options{
		Driver: storage.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "posts.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close(db) })

	require.NoError(t, Migrate(ctx, db))
	return NewRepository(db)
}

func samePost(t *testing.T, want Post, got Post) {
	t.Helper()
	assert.Equal(t, want.Slug, got.Slug)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Markdown, got.Markdown)
}

func TestCreateThenGetRoundTrips(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	post := Post{Slug: "hello", Title: "Hello", Markdown: "# Hi"}

	require.NoError(t, repo.CreatePost(ctx, post))

	got, err := repo.GetPost(ctx, "hello")
	require.NoError(t, err)
	samePost(t, post, got)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetMissingPostReturnsAbsence(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetPost(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDuplicateSlugFails(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreatePost(ctx, Post{Slug: "a", Title: "First", Markdown: "one"}))
	err := repo.CreatePost(ctx, Post{Slug: "a", Title: "Second", Markdown: "two"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	got, err := repo.GetPost(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
}

func TestUpdateMovesLookupKey(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreatePost(ctx, Post{Slug: "old", Title: "Old", Markdown: "old body"}))

	updated := Post{Slug: "new", Title: "New", Markdown: "new body"}
	require.NoError(t, repo.UpdatePost(ctx, updated, "old"))

	_, err := repo.GetPost(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.GetPost(ctx, "new")
	require.NoError(t, err)
	samePost(t, updated, got)
}

func TestUpdateInPlace(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreatePost(ctx, Post{Slug: "same", Title: "Before", Markdown: "before"}))
	require.NoError(t, repo.UpdatePost(ctx, Post{Slug: "same", Title: "After", Markdown: "after"}, "same"))

	got, err := repo.GetPost(ctx, "same")
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, "after", got.Markdown)
}

func TestUpdateMissingOrCollidingSlug(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.UpdatePost(ctx, Post{Slug: "x", Title: "X", Markdown: "x"}, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.CreatePost(ctx, Post{Slug: "a", Title: "A", Markdown: "a"}))
	require.NoError(t, repo.CreatePost(ctx, Post{Slug: "b", Title: "B", Markdown: "b"}))
	err = repo.UpdatePost(ctx, Post{Slug: "a", Title: "B2", Markdown: "b2"}, "b")
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestDeleteThenGetReturnsAbsence(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreatePost(ctx, Post{Slug: "gone", Title: "Gone", Markdown: "bye"}))
	require.NoError(t, repo.DeletePost(ctx, "gone"))

	_, err := repo.GetPost(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.DeletePost(ctx, "gone")
	assert.True(t, errors.Is(err, ErrNotFound), "second delete should report absence, got %v", err)
}

func TestListPostsReturnsExactlyCreatedSlugs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	empty, err := repo.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, slug := range []string{"a", "b", "c"} {
		require.NoError(t, repo.CreatePost(ctx, Post{Slug: slug, Title: slug, Markdown: slug}))
	}

	list, err := repo.ListPosts(ctx)
	require.NoError(t, err)

	slugs := make([]string, 0, len(list))
	for _, post := range list {
		slugs = append(slugs, post.Slug)
	}
	sort.Strings(slugs)
	assert.Equal(t, []string{"a", "b", "c"}, slugs)
}

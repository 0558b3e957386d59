package posts

import (
	"context"
	"errors"
	"fmt"

	"minblog/internal/storage"

	"gorm.io/gorm"
)

// Repository runs one statement per call against the posts table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the posts table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return storage.Migrate(ctx, db, &Post{})
}

func (r *Repository) ListPosts(ctx context.Context) ([]Post, error) {
	var out []Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("slug").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return out, nil
}

func (r *Repository) GetPost(ctx context.Context, slug string) (Post, error) {
	var post Post
	err := r.db.WithContext(ctx).Where("slug = ?", slug).Take(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Post{}, ErrNotFound
		}
		return Post{}, fmt.Errorf("get post %q: %w", slug, err)
	}
	return post, nil
}

func (r *Repository) CreatePost(ctx context.Context, post Post) error {
	row := Post{
		Slug:     post.Slug,
		Title:    post.Title,
		Markdown: post.Markdown,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if storage.IsUniqueViolation(err) {
			return fmt.Errorf("create post %q: %w", post.Slug, ErrSlugTaken)
		}
		return fmt.Errorf("create post %q: %w", post.Slug, err)
	}
	return nil
}

func (r *Repository) UpdatePost(ctx context.Context, post Post, originalSlug string) error {
	result := r.db.WithContext(ctx).
		Model(&Post{}).
		Where("slug = ?", originalSlug).
		Updates(map[string]interface{}{
			"title":    post.Title,
			"markdown": post.Markdown,
			"slug":     post.Slug,
		})
	if result.Error != nil {
		if storage.IsUniqueViolation(result.Error) {
			return fmt.Errorf("update post %q: %w", originalSlug, ErrSlugTaken)
		}
		return fmt.Errorf("update post %q: %w", originalSlug, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&Post{})
	if result.Error != nil {
		return fmt.Errorf("delete post %q: %w", slug, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

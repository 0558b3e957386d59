// Package posts holds the blog's single entity, its GORM repository and the
// admin form schema.
package posts

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is the absence signal: no post matches the requested slug.
	ErrNotFound = errors.New("post not found")
	// ErrSlugTaken reports a slug uniqueness violation on create or update.
	ErrSlugTaken = errors.New("post slug already taken")
)

type Post struct {
	Slug      string    `gorm:"primaryKey;size:255"`
	Title     string    `gorm:"size:255;not null"`
	Markdown  string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Post) TableName() string {
	return "posts"
}

// Store is the post persistence contract consumed by the web layer.
type Store interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, slug string) (Post, error)
	CreatePost(ctx context.Context, post Post) error
	UpdatePost(ctx context.Context, post Post, originalSlug string) error
	DeletePost(ctx context.Context, slug string) error
}

var _ Store = (*Repository)(nil)

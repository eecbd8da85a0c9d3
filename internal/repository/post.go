package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts. Posts are hard
// deleted; there is no tombstone column on the table.
type PostRepository interface {
	Store[models.Post]
	GetByAuthor(ctx context.Context, authorID uint, skip, limit int) ([]models.Post, error)
	GetPublished(ctx context.Context, skip, limit int) ([]models.Post, error)
	GetWithAuthor(ctx context.Context, id uint) (*models.Post, error)
	Publish(ctx context.Context, id uint) (*models.Post, error)
	Unpublish(ctx context.Context, id uint) (*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type postRepository struct {
	*repository[models.Post]
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{repository: &repository[models.Post]{db: db}}
}

func (r *postRepository) GetByAuthor(ctx context.Context, authorID uint, skip, limit int) ([]models.Post, error) {
	return r.GetMulti(ctx, ListOptions{
		Skip:    skip,
		Limit:   limit,
		Filters: map[string]any{"author_id": authorID},
		OrderBy: []string{"created_at DESC"},
	})
}

func (r *postRepository) GetPublished(ctx context.Context, skip, limit int) ([]models.Post, error) {
	return r.GetMulti(ctx, ListOptions{
		Skip:    skip,
		Limit:   limit,
		Filters: map[string]any{"published": true},
		OrderBy: []string{"created_at DESC"},
	})
}

// GetWithAuthor eagerly attaches the author row.
func (r *postRepository) GetWithAuthor(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// Publish marks the post visible. Publishing an already published post is a
// no-op that still returns the post.
func (r *postRepository) Publish(ctx context.Context, id uint) (*models.Post, error) {
	return r.Update(ctx, id, map[string]any{"published": true})
}

// Unpublish reverts the post to draft.
func (r *postRepository) Unpublish(ctx context.Context, id uint) (*models.Post, error) {
	return r.Update(ctx, id, map[string]any{"published": false})
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return r.Count(ctx, map[string]any{"author_id": authorID})
}

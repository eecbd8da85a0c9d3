package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.CreatePost(context.Background(), CreatePostInput{Title: "   ", AuthorID: 1})
		assertValidationError(t, err)
	})

	t.Run("title too long", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.CreatePost(context.Background(), CreatePostInput{
			Title: strings.Repeat("x", 201), AuthorID: 1,
		})
		assertValidationError(t, err)
	})

	t.Run("missing author", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.CreatePost(context.Background(), CreatePostInput{Title: "Hello", AuthorID: 42})
		assertNotFoundError(t, err)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.existsFn = func(_ context.Context, id uint) (bool, error) { return true, nil }
		var created *models.Post
		posts := noopPostRepo()
		posts.createFn = func(_ context.Context, p *models.Post) error {
			created = p
			return nil
		}
		svc := NewPostService(posts, users)

		_, err := svc.CreatePost(context.Background(), CreatePostInput{
			Title: "  Hello  ", Content: "body", AuthorID: 42,
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Hello", created.Title)
		assert.EqualValues(t, 42, created.AuthorID)
		assert.False(t, created.Published)
	})
}

func TestPostService_ListPosts(t *testing.T) {
	t.Parallel()

	t.Run("published only filters drafts", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getMultiFn = func(_ context.Context, opts repository.ListOptions) ([]models.Post, error) {
			assert.Equal(t, map[string]any{"published": true}, opts.Filters)
			return []models.Post{{ID: 1, Published: true}}, nil
		}
		repo.countFn = func(_ context.Context, filters map[string]any) (int64, error) {
			assert.Equal(t, map[string]any{"published": true}, filters)
			return 1, nil
		}
		svc := NewPostService(repo, noopUserRepo())

		page, err := svc.ListPosts(context.Background(), pagination.NewParams(1, 20), true)
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})

	t.Run("include drafts passes no filter", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getMultiFn = func(_ context.Context, opts repository.ListOptions) ([]models.Post, error) {
			assert.Nil(t, opts.Filters)
			return nil, nil
		}
		svc := NewPostService(repo, noopUserRepo())

		page, err := svc.ListPosts(context.Background(), pagination.NewParams(1, 20), false)
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
	})
}

func TestPostService_PublishLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("publish missing post", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.PublishPost(context.Background(), 1)
		assertNotFoundError(t, err)
	})

	t.Run("publish success", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.publishFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Published: true}, nil
		}
		svc := NewPostService(repo, noopUserRepo())
		post, err := svc.PublishPost(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, post.Published)
	})

	t.Run("unpublish success", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.unpublishFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Published: false}, nil
		}
		svc := NewPostService(repo, noopUserRepo())
		post, err := svc.UnpublishPost(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, post.Published)
	})
}

func TestPostService_PostsByAuthor(t *testing.T) {
	t.Parallel()

	t.Run("missing author", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.PostsByAuthor(context.Background(), 42, pagination.NewParams(1, 20))
		assertNotFoundError(t, err)
	})

	t.Run("forwards pagination", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.existsFn = func(_ context.Context, _ uint) (bool, error) { return true, nil }
		repo := noopPostRepo()
		repo.getByAuthorFn = func(_ context.Context, authorID uint, skip, limit int) ([]models.Post, error) {
			assert.EqualValues(t, 42, authorID)
			assert.Equal(t, 20, skip)
			assert.Equal(t, 20, limit)
			return nil, nil
		}
		svc := NewPostService(repo, users)
		_, err := svc.PostsByAuthor(context.Background(), 42, pagination.NewParams(2, 20))
		assert.NoError(t, err)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		err := svc.DeletePost(context.Background(), 1)
		assertNotFoundError(t, err)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.deleteFn = func(_ context.Context, _ uint) (bool, error) { return true, nil }
		svc := NewPostService(repo, noopUserRepo())
		assert.NoError(t, svc.DeletePost(context.Background(), 1))
	})
}

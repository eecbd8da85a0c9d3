package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	Title     string
	Content   string
	AuthorID  uint
	Published bool
}

// UpdatePostInput carries a partial update. Nil fields are left untouched.
type UpdatePostInput struct {
	Title     *string
	Content   *string
	Published *bool
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, models.NewValidationError("Title must not be empty")
	}
	if len(in.Title) > 200 {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}

	// Creating a post for a tombstoned or missing author fails the same way.
	exists, err := s.userRepo.Exists(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Author", in.AuthorID)
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  in.AuthorID,
		Published: in.Published,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts pages through posts, newest first. Drafts are excluded unless
// publishedOnly is false.
func (s *PostService) ListPosts(ctx context.Context, p pagination.Params, publishedOnly bool) (pagination.Page[models.Post], error) {
	var filters map[string]any
	if publishedOnly {
		filters = map[string]any{"published": true}
	}
	posts, err := s.postRepo.GetMulti(ctx, repository.ListOptions{
		Skip:    p.Offset(),
		Limit:   p.Limit(),
		Filters: filters,
		OrderBy: []string{"created_at DESC"},
	})
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	total, err := s.postRepo.Count(ctx, filters)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.NewPage(posts, total, p), nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) GetPostWithAuthor(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetWithAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) PostsByAuthor(ctx context.Context, authorID uint, p pagination.Params) ([]models.Post, error) {
	exists, err := s.userRepo.Exists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Author", authorID)
	}
	return s.postRepo.GetByAuthor(ctx, authorID, p.Offset(), p.Limit())
}

func (s *PostService) UpdatePost(ctx context.Context, id uint, in UpdatePostInput) (*models.Post, error) {
	updates := map[string]any{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title must not be empty")
		}
		if len(title) > 200 {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		updates["title"] = title
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Published != nil {
		updates["published"] = *in.Published
	}

	post, err := s.postRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) PublishPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.Publish(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) UnpublishPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.Unpublish(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	deleted, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// MinSearchLength is the shortest query string Search accepts.
const MinSearchLength = 2

type UserService struct {
	userRepo repository.UserRepository
}

type CreateUserInput struct {
	Email    string
	Username string
	Password string
}

// UpdateUserInput carries a partial update. Nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Username *string
	Password *string
	IsActive *bool
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if err := validateUserFields(in.Email, in.Username, in.Password); err != nil {
		return nil, err
	}

	// Fast-path checks; the partial unique indexes remain the source of
	// truth under concurrent writers.
	if taken, err := s.userRepo.EmailExists(ctx, in.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, models.NewConflictError("Email already registered")
	}
	if taken, err := s.userRepo.UsernameExists(ctx, in.Username, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, models.NewConflictError("Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, p pagination.Params) (pagination.Page[models.User], error) {
	users, err := s.userRepo.GetMulti(ctx, repository.ListOptions{
		Skip:    p.Offset(),
		Limit:   p.Limit(),
		OrderBy: []string{"id ASC"},
	})
	if err != nil {
		return pagination.Page[models.User]{}, err
	}
	total, err := s.userRepo.Count(ctx, nil)
	if err != nil {
		return pagination.Page[models.User]{}, err
	}
	return pagination.NewPage(users, total, p), nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

func (s *UserService) GetUserWithPosts(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetWithPosts(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	updates := map[string]any{}

	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if !strings.Contains(email, "@") {
			return nil, models.NewValidationError("Invalid email address")
		}
		if taken, err := s.userRepo.EmailExists(ctx, email, id); err != nil {
			return nil, err
		} else if taken {
			return nil, models.NewConflictError("Email already registered")
		}
		updates["email"] = email
	}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if len(username) < 3 || len(username) > 50 {
			return nil, models.NewValidationError("Username must be between 3 and 50 characters")
		}
		if taken, err := s.userRepo.UsernameExists(ctx, username, id); err != nil {
			return nil, err
		} else if taken {
			return nil, models.NewConflictError("Username already taken")
		}
		updates["username"] = username
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, models.NewValidationError("Password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		updates["password_hash"] = string(hash)
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	user, err := s.userRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

// SoftDeleteUser tombstones the user. The row keeps its history and can be
// restored later.
func (s *UserService) SoftDeleteUser(ctx context.Context, id uint) error {
	deleted, err := s.userRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (s *UserService) RestoreUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

// PermanentDeleteUser removes the row entirely; the user's posts go with it.
func (s *UserService) PermanentDeleteUser(ctx context.Context, id uint) error {
	deleted, err := s.userRepo.PermanentDelete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (s *UserService) SearchUsers(ctx context.Context, query string, p pagination.Params) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if len(query) < MinSearchLength {
		return nil, models.NewValidationError("Search query must be at least 2 characters")
	}
	return s.userRepo.Search(ctx, query, p.Offset(), p.Limit())
}

func (s *UserService) ActiveUsers(ctx context.Context, p pagination.Params) ([]models.User, error) {
	return s.userRepo.GetActive(ctx, p.Offset(), p.Limit())
}

func (s *UserService) UserStats(ctx context.Context) (models.UserStatusCounts, error) {
	return s.userRepo.CountByStatus(ctx)
}

func (s *UserService) RecentUsers(ctx context.Context, days, limit int) ([]models.User, error) {
	return s.userRepo.GetRecent(ctx, days, limit)
}

func validateUserFields(email, username, password string) error {
	if !strings.Contains(email, "@") {
		return models.NewValidationError("Invalid email address")
	}
	if len(username) < 3 || len(username) > 50 {
		return models.NewValidationError("Username must be between 3 and 50 characters")
	}
	if len(password) < 8 {
		return models.NewValidationError("Password must be at least 8 characters")
	}
	return nil
}

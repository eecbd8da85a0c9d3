package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
)

// userRepoStub implements repository.UserRepository with overridable
// function fields. Unset functions return zero values.
type userRepoStub struct {
	getFn            func(ctx context.Context, id uint) (*models.User, error)
	getMultiFn       func(ctx context.Context, opts repository.ListOptions) ([]models.User, error)
	createFn         func(ctx context.Context, user *models.User) error
	updateFn         func(ctx context.Context, id uint, updates map[string]any) (*models.User, error)
	countFn          func(ctx context.Context, filters map[string]any) (int64, error)
	existsFn         func(ctx context.Context, id uint) (bool, error)
	softDeleteFn     func(ctx context.Context, id uint) (bool, error)
	restoreFn        func(ctx context.Context, id uint) (*models.User, error)
	permDeleteFn     func(ctx context.Context, id uint) (bool, error)
	getWithPostsFn   func(ctx context.Context, id uint) (*models.User, error)
	searchFn         func(ctx context.Context, query string, skip, limit int) ([]models.User, error)
	getActiveFn      func(ctx context.Context, skip, limit int) ([]models.User, error)
	countByStatusFn  func(ctx context.Context) (models.UserStatusCounts, error)
	getRecentFn      func(ctx context.Context, days, limit int) ([]models.User, error)
	emailExistsFn    func(ctx context.Context, email string, excludeID uint) (bool, error)
	usernameExistsFn func(ctx context.Context, username string, excludeID uint) (bool, error)
}

func noopUserRepo() *userRepoStub { return &userRepoStub{} }

func (s *userRepoStub) Get(ctx context.Context, id uint) (*models.User, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, nil
}

func (s *userRepoStub) GetMulti(ctx context.Context, opts repository.ListOptions) ([]models.User, error) {
	if s.getMultiFn != nil {
		return s.getMultiFn(ctx, opts)
	}
	return nil, nil
}

func (s *userRepoStub) GetAll(ctx context.Context) ([]models.User, error) { return nil, nil }

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) Update(ctx context.Context, id uint, updates map[string]any) (*models.User, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, updates)
	}
	return nil, nil
}

func (s *userRepoStub) Delete(ctx context.Context, id uint) (bool, error) { return false, nil }

func (s *userRepoStub) Count(ctx context.Context, filters map[string]any) (int64, error) {
	if s.countFn != nil {
		return s.countFn(ctx, filters)
	}
	return 0, nil
}

func (s *userRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, id)
	}
	return false, nil
}

func (s *userRepoStub) BulkCreate(ctx context.Context, users []*models.User) error { return nil }

func (s *userRepoStub) BulkUpdate(ctx context.Context, updates []repository.FieldUpdate) (int64, error) {
	return 0, nil
}

func (s *userRepoStub) BulkDelete(ctx context.Context, ids []uint) (int64, error) { return 0, nil }

func (s *userRepoStub) GetWithDeleted(ctx context.Context, id uint) (*models.User, error) {
	return nil, nil
}

func (s *userRepoStub) ListWithDeleted(ctx context.Context, opts repository.ListOptions) ([]models.User, error) {
	return nil, nil
}

func (s *userRepoStub) SoftDelete(ctx context.Context, id uint) (bool, error) {
	if s.softDeleteFn != nil {
		return s.softDeleteFn(ctx, id)
	}
	return false, nil
}

func (s *userRepoStub) Restore(ctx context.Context, id uint) (*models.User, error) {
	if s.restoreFn != nil {
		return s.restoreFn(ctx, id)
	}
	return nil, nil
}

func (s *userRepoStub) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	if s.permDeleteFn != nil {
		return s.permDeleteFn(ctx, id)
	}
	return false, nil
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, nil
}

func (s *userRepoStub) GetWithPosts(ctx context.Context, id uint) (*models.User, error) {
	if s.getWithPostsFn != nil {
		return s.getWithPostsFn(ctx, id)
	}
	return nil, nil
}

func (s *userRepoStub) Search(ctx context.Context, query string, skip, limit int) ([]models.User, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, query, skip, limit)
	}
	return nil, nil
}

func (s *userRepoStub) GetActive(ctx context.Context, skip, limit int) ([]models.User, error) {
	if s.getActiveFn != nil {
		return s.getActiveFn(ctx, skip, limit)
	}
	return nil, nil
}

func (s *userRepoStub) CountByStatus(ctx context.Context) (models.UserStatusCounts, error) {
	if s.countByStatusFn != nil {
		return s.countByStatusFn(ctx)
	}
	return models.UserStatusCounts{}, nil
}

func (s *userRepoStub) GetRecent(ctx context.Context, days, limit int) ([]models.User, error) {
	if s.getRecentFn != nil {
		return s.getRecentFn(ctx, days, limit)
	}
	return nil, nil
}

func (s *userRepoStub) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	if s.emailExistsFn != nil {
		return s.emailExistsFn(ctx, email, excludeID)
	}
	return false, nil
}

func (s *userRepoStub) UsernameExists(ctx context.Context, username string, excludeID uint) (bool, error) {
	if s.usernameExistsFn != nil {
		return s.usernameExistsFn(ctx, username, excludeID)
	}
	return false, nil
}

// postRepoStub implements repository.PostRepository the same way.
type postRepoStub struct {
	getFn           func(ctx context.Context, id uint) (*models.Post, error)
	getMultiFn      func(ctx context.Context, opts repository.ListOptions) ([]models.Post, error)
	createFn        func(ctx context.Context, post *models.Post) error
	updateFn        func(ctx context.Context, id uint, updates map[string]any) (*models.Post, error)
	deleteFn        func(ctx context.Context, id uint) (bool, error)
	countFn         func(ctx context.Context, filters map[string]any) (int64, error)
	getByAuthorFn   func(ctx context.Context, authorID uint, skip, limit int) ([]models.Post, error)
	getWithAuthorFn func(ctx context.Context, id uint) (*models.Post, error)
	publishFn       func(ctx context.Context, id uint) (*models.Post, error)
	unpublishFn     func(ctx context.Context, id uint) (*models.Post, error)
}

func noopPostRepo() *postRepoStub { return &postRepoStub{} }

func (s *postRepoStub) Get(ctx context.Context, id uint) (*models.Post, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, nil
}

func (s *postRepoStub) GetMulti(ctx context.Context, opts repository.ListOptions) ([]models.Post, error) {
	if s.getMultiFn != nil {
		return s.getMultiFn(ctx, opts)
	}
	return nil, nil
}

func (s *postRepoStub) GetAll(ctx context.Context) ([]models.Post, error) { return nil, nil }

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, post)
	}
	return nil
}

func (s *postRepoStub) Update(ctx context.Context, id uint, updates map[string]any) (*models.Post, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, updates)
	}
	return nil, nil
}

func (s *postRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return false, nil
}

func (s *postRepoStub) Count(ctx context.Context, filters map[string]any) (int64, error) {
	if s.countFn != nil {
		return s.countFn(ctx, filters)
	}
	return 0, nil
}

func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) { return false, nil }

func (s *postRepoStub) BulkCreate(ctx context.Context, posts []*models.Post) error { return nil }

func (s *postRepoStub) BulkUpdate(ctx context.Context, updates []repository.FieldUpdate) (int64, error) {
	return 0, nil
}

func (s *postRepoStub) BulkDelete(ctx context.Context, ids []uint) (int64, error) { return 0, nil }

func (s *postRepoStub) GetByAuthor(ctx context.Context, authorID uint, skip, limit int) ([]models.Post, error) {
	if s.getByAuthorFn != nil {
		return s.getByAuthorFn(ctx, authorID, skip, limit)
	}
	return nil, nil
}

func (s *postRepoStub) GetPublished(ctx context.Context, skip, limit int) ([]models.Post, error) {
	return nil, nil
}

func (s *postRepoStub) GetWithAuthor(ctx context.Context, id uint) (*models.Post, error) {
	if s.getWithAuthorFn != nil {
		return s.getWithAuthorFn(ctx, id)
	}
	return nil, nil
}

func (s *postRepoStub) Publish(ctx context.Context, id uint) (*models.Post, error) {
	if s.publishFn != nil {
		return s.publishFn(ctx, id)
	}
	return nil, nil
}

func (s *postRepoStub) Unpublish(ctx context.Context, id uint) (*models.Post, error) {
	if s.unpublishFn != nil {
		return s.unpublishFn(ctx, id)
	}
	return nil, nil
}

func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return 0, nil
}

// roleRepoStub implements repository.RoleRepository.
type roleRepoStub struct {
	getFn          func(ctx context.Context, id uint) (*models.Role, error)
	getAllFn       func(ctx context.Context) ([]models.Role, error)
	createFn       func(ctx context.Context, role *models.Role) error
	deleteFn       func(ctx context.Context, id uint) (bool, error)
	existsFn       func(ctx context.Context, id uint) (bool, error)
	getByNameFn    func(ctx context.Context, name string) (*models.Role, error)
	assignFn       func(ctx context.Context, userID, roleID uint) error
	removeFn       func(ctx context.Context, userID, roleID uint) error
	getUserRolesFn func(ctx context.Context, userID uint) ([]models.Role, error)
}

func noopRoleRepo() *roleRepoStub { return &roleRepoStub{} }

func (s *roleRepoStub) Get(ctx context.Context, id uint) (*models.Role, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, nil
}

func (s *roleRepoStub) GetMulti(ctx context.Context, opts repository.ListOptions) ([]models.Role, error) {
	return nil, nil
}

func (s *roleRepoStub) GetAll(ctx context.Context) ([]models.Role, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return nil, nil
}

func (s *roleRepoStub) Create(ctx context.Context, role *models.Role) error {
	if s.createFn != nil {
		return s.createFn(ctx, role)
	}
	return nil
}

func (s *roleRepoStub) Update(ctx context.Context, id uint, updates map[string]any) (*models.Role, error) {
	return nil, nil
}

func (s *roleRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return false, nil
}

func (s *roleRepoStub) Count(ctx context.Context, filters map[string]any) (int64, error) {
	return 0, nil
}

func (s *roleRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, id)
	}
	return false, nil
}

func (s *roleRepoStub) BulkCreate(ctx context.Context, roles []*models.Role) error { return nil }

func (s *roleRepoStub) BulkUpdate(ctx context.Context, updates []repository.FieldUpdate) (int64, error) {
	return 0, nil
}

func (s *roleRepoStub) BulkDelete(ctx context.Context, ids []uint) (int64, error) { return 0, nil }

func (s *roleRepoStub) GetByName(ctx context.Context, name string) (*models.Role, error) {
	if s.getByNameFn != nil {
		return s.getByNameFn(ctx, name)
	}
	return nil, nil
}

func (s *roleRepoStub) AssignToUser(ctx context.Context, userID, roleID uint) error {
	if s.assignFn != nil {
		return s.assignFn(ctx, userID, roleID)
	}
	return nil
}

func (s *roleRepoStub) RemoveFromUser(ctx context.Context, userID, roleID uint) error {
	if s.removeFn != nil {
		return s.removeFn(ctx, userID, roleID)
	}
	return nil
}

func (s *roleRepoStub) GetUserRoles(ctx context.Context, userID uint) ([]models.Role, error) {
	if s.getUserRolesFn != nil {
		return s.getUserRolesFn(ctx, userID)
	}
	return nil, nil
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
}

package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users. All inherited
// reads see live rows only; tombstoned users stay addressable through the
// soft-delete operations.
type UserRepository interface {
	SoftDeleteStore[models.User]
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetWithPosts(ctx context.Context, id uint) (*models.User, error)
	Search(ctx context.Context, query string, skip, limit int) ([]models.User, error)
	GetActive(ctx context.Context, skip, limit int) ([]models.User, error)
	CountByStatus(ctx context.Context) (models.UserStatusCounts, error)
	GetRecent(ctx context.Context, days, limit int) ([]models.User, error)
	EmailExists(ctx context.Context, email string, excludeID uint) (bool, error)
	UsernameExists(ctx context.Context, username string, excludeID uint) (bool, error)
}

type userRepository struct {
	*softDeleteRepository[models.User]
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		softDeleteRepository: &softDeleteRepository[models.User]{
			repository: &repository[models.User]{db: db},
		},
	}
}

// cachedUser is the cache wire form of a user. models.User hides
// PasswordHash and DeletedAt from its JSON encoding, so caching the model
// directly would zero them on a hit; the wrapper carries them explicitly.
type cachedUser struct {
	User         models.User    `json:"user"`
	PasswordHash string         `json:"password_hash"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at"`
}

func (c cachedUser) unwrap() *models.User {
	user := c.User
	user.PasswordHash = c.PasswordHash
	user.DeletedAt = c.DeletedAt
	return &user
}

// Get reads through the cache; single-user fetches are the hottest read path.
func (r *userRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var cached cachedUser
	key := cache.UserKey(id)
	if cache.Get(ctx, key, &cached) {
		return cached.unwrap(), nil
	}

	user, err := r.softDeleteRepository.Get(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	cache.Set(ctx, key, cachedUser{
		User:         *user,
		PasswordHash: user.PasswordHash,
		DeletedAt:    user.DeletedAt,
	}, cache.UserTTL)
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, updates map[string]any) (*models.User, error) {
	user, err := r.softDeleteRepository.Update(ctx, id, updates)
	if err == nil && user != nil {
		cache.InvalidateUser(ctx, id)
	}
	return user, err
}

func (r *userRepository) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := r.softDeleteRepository.Delete(ctx, id)
	if deleted {
		cache.InvalidateUser(ctx, id)
	}
	return deleted, err
}

func (r *userRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	deleted, err := r.softDeleteRepository.SoftDelete(ctx, id)
	if deleted {
		cache.InvalidateUser(ctx, id)
	}
	return deleted, err
}

func (r *userRepository) Restore(ctx context.Context, id uint) (*models.User, error) {
	user, err := r.softDeleteRepository.Restore(ctx, id)
	if err == nil && user != nil {
		cache.InvalidateUser(ctx, id)
	}
	return user, err
}

func (r *userRepository) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	deleted, err := r.softDeleteRepository.PermanentDelete(ctx, id)
	if deleted {
		cache.InvalidateUser(ctx, id)
	}
	return deleted, err
}

func (r *userRepository) BulkUpdate(ctx context.Context, updates []FieldUpdate) (int64, error) {
	n, err := r.softDeleteRepository.BulkUpdate(ctx, updates)
	if err == nil {
		for _, u := range updates {
			cache.InvalidateUser(ctx, u.ID)
		}
	}
	return n, err
}

func (r *userRepository) BulkDelete(ctx context.Context, ids []uint) (int64, error) {
	n, err := r.softDeleteRepository.BulkDelete(ctx, ids)
	if err == nil {
		for _, id := range ids {
			cache.InvalidateUser(ctx, id)
		}
	}
	return n, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByColumn(ctx, "email = ?", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getByColumn(ctx, "username = ?", username)
}

func (r *userRepository) getByColumn(ctx context.Context, cond string, value string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(cond, value).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetWithPosts eagerly attaches the user's posts, newest first.
func (r *userRepository) GetWithPosts(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// Search matches the query case-insensitively against username and email.
// LOWER/LIKE instead of ILIKE keeps the query portable across PostgreSQL
// and the SQLite test database.
func (r *userRepository) Search(ctx context.Context, query string, skip, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}
	like := "%" + strings.ToLower(query) + "%"

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like).
		Offset(skip).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) GetActive(ctx context.Context, skip, limit int) ([]models.User, error) {
	return r.GetMulti(ctx, ListOptions{
		Skip:    skip,
		Limit:   limit,
		Filters: map[string]any{"is_active": true},
	})
}

func (r *userRepository) CountByStatus(ctx context.Context) (models.UserStatusCounts, error) {
	var rows []struct {
		IsActive bool
		Count    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("is_active, COUNT(id) AS count").
		Group("is_active").
		Scan(&rows).Error; err != nil {
		return models.UserStatusCounts{}, models.NewInternalError(err)
	}

	var counts models.UserStatusCounts
	for _, row := range rows {
		if row.IsActive {
			counts.Active = row.Count
		} else {
			counts.Inactive = row.Count
		}
	}
	counts.Total = counts.Active + counts.Inactive
	return counts, nil
}

func (r *userRepository) GetRecent(ctx context.Context, days, limit int) ([]models.User, error) {
	if days <= 0 {
		days = 7
	}
	if limit <= 0 {
		limit = 10
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("created_at >= ?", cutoff).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// EmailExists checks live rows only, matching the partial unique index that
// is the actual enforcement point.
func (r *userRepository) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.columnExists(ctx, "email = ?", email, excludeID)
}

func (r *userRepository) UsernameExists(ctx context.Context, username string, excludeID uint) (bool, error) {
	return r.columnExists(ctx, "username = ?", username, excludeID)
}

func (r *userRepository) columnExists(ctx context.Context, cond string, value string, excludeID uint) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.User{}).Where(cond, value)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

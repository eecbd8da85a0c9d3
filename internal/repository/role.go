package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// RoleRepository defines persistence operations for roles and the
// user-role association.
type RoleRepository interface {
	Store[models.Role]
	GetByName(ctx context.Context, name string) (*models.Role, error)
	AssignToUser(ctx context.Context, userID, roleID uint) error
	RemoveFromUser(ctx context.Context, userID, roleID uint) error
	GetUserRoles(ctx context.Context, userID uint) ([]models.Role, error)
}

type roleRepository struct {
	*repository[models.Role]
}

// NewRoleRepository returns a new RoleRepository implementation.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{repository: &repository[models.Role]{db: db}}
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &role, nil
}

// AssignToUser links a role to a user. Assigning an already held role is a
// no-op at the association level.
func (r *roleRepository) AssignToUser(ctx context.Context, userID, roleID uint) error {
	user := models.User{ID: userID}
	role := models.Role{ID: roleID}
	if err := r.db.WithContext(ctx).Model(&user).Association("Roles").Append(&role); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// RemoveFromUser unlinks a role from a user.
func (r *roleRepository) RemoveFromUser(ctx context.Context, userID, roleID uint) error {
	user := models.User{ID: userID}
	role := models.Role{ID: roleID}
	if err := r.db.WithContext(ctx).Model(&user).Association("Roles").Delete(&role); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *roleRepository) GetUserRoles(ctx context.Context, userID uint) ([]models.Role, error) {
	user := models.User{ID: userID}
	var roles []models.Role
	if err := r.db.WithContext(ctx).Model(&user).Association("Roles").Find(&roles); err != nil {
		return nil, models.NewInternalError(err)
	}
	return roles, nil
}

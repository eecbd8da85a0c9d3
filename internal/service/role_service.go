package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type RoleService struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
}

type CreateRoleInput struct {
	Name        string
	Description string
}

func NewRoleService(roleRepo repository.RoleRepository, userRepo repository.UserRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo, userRepo: userRepo}
}

func (s *RoleService) CreateRole(ctx context.Context, in CreateRoleInput) (*models.Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, models.NewValidationError("Role name must not be empty")
	}
	if len(in.Name) > 50 {
		return nil, models.NewValidationError("Role name too long (max 50 characters)")
	}

	if existing, err := s.roleRepo.GetByName(ctx, in.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Role already exists")
	}

	role := &models.Role{Name: in.Name, Description: in.Description}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) ListRoles(ctx context.Context) ([]models.Role, error) {
	return s.roleRepo.GetAll(ctx)
}

func (s *RoleService) GetRole(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.roleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, models.NewNotFoundError("Role", id)
	}
	return role, nil
}

func (s *RoleService) DeleteRole(ctx context.Context, id uint) error {
	deleted, err := s.roleRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Role", id)
	}
	return nil
}

// AssignRole links a role to a user. Both sides must exist.
func (s *RoleService) AssignRole(ctx context.Context, userID, roleID uint) error {
	if err := s.checkPair(ctx, userID, roleID); err != nil {
		return err
	}
	return s.roleRepo.AssignToUser(ctx, userID, roleID)
}

// RemoveRole unlinks a role from a user.
func (s *RoleService) RemoveRole(ctx context.Context, userID, roleID uint) error {
	if err := s.checkPair(ctx, userID, roleID); err != nil {
		return err
	}
	return s.roleRepo.RemoveFromUser(ctx, userID, roleID)
}

func (s *RoleService) UserRoles(ctx context.Context, userID uint) ([]models.Role, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", userID)
	}
	return s.roleRepo.GetUserRoles(ctx, userID)
}

func (s *RoleService) checkPair(ctx context.Context, userID, roleID uint) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("User", userID)
	}
	exists, err = s.roleRepo.Exists(ctx, roleID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Role", roleID)
	}
	return nil
}

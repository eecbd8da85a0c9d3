package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRole handles POST /api/roles
func (s *Server) CreateRole(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	role, err := s.roleSvc().CreateRole(c.Context(), service.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(role)
}

// GetRoles handles GET /api/roles
func (s *Server) GetRoles(c *fiber.Ctx) error {
	roles, err := s.roleSvc().ListRoles(c.Context())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(roles)
}

// GetRole handles GET /api/roles/:id
func (s *Server) GetRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	role, err := s.roleSvc().GetRole(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(role)
}

// DeleteRole handles DELETE /api/roles/:id
func (s *Server) DeleteRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.roleSvc().DeleteRole(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserRoles handles GET /api/users/:id/roles
func (s *Server) GetUserRoles(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	roles, err := s.roleSvc().UserRoles(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(roles)
}

// AssignRole handles POST /api/users/:id/roles/:roleId
func (s *Server) AssignRole(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	roleID, err := s.parseID(c, "roleId")
	if err != nil {
		return nil
	}

	if err := s.roleSvc().AssignRole(c.Context(), userID, roleID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Role assigned"})
}

// RemoveRole handles DELETE /api/users/:id/roles/:roleId
func (s *Server) RemoveRole(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	roleID, err := s.parseID(c, "roleId")
	if err != nil {
		return nil
	}

	if err := s.roleSvc().RemoveRole(c.Context(), userID, roleID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Role removed"})
}

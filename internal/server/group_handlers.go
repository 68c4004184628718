package server

import (
	"zogakzip/internal/models"
	"zogakzip/internal/repository"
	"zogakzip/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateGroup registers a new group
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req service.CreateGroupInput
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	// A multipart create may attach one image under the "image" field
	if file, ferr := c.FormFile("image"); ferr == nil {
		url, saveErr := s.uploads.Save(file)
		if saveErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Failed to store image"))
		}
		req.ImageURL = url
	}

	group, err := s.groupService.Create(ctx, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Group created successfully",
		"group":   group,
	})
}

// GetGroups lists groups with optional filtering, searching and sorting
func (s *Server) GetGroups(c *fiber.Ctx) error {
	ctx := c.UserContext()

	filter := repository.GroupFilter{
		IsPublic: parseBoolQuery(c, "isPublic"),
		Keyword:  c.Query("keyword"),
		SortBy:   c.Query("sortBy"),
	}

	list, err := s.groupService.List(ctx, filter)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(listEnvelope(list.TotalItemCount, list.Items))
}

// GetGroup returns the group detail. Private groups require the
// password as a query parameter.
func (s *Server) GetGroup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	detail, err := s.groupService.Get(ctx, groupID, c.Query("password"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(detail)
}

// UpdateGroup updates a group after verifying its password
func (s *Server) UpdateGroup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	var req service.UpdateGroupInput
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.Update(ctx, groupID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Group updated successfully",
		"group":   group,
	})
}

// DeleteGroup removes a group and everything under it
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	var req struct {
		Password string `json:"password"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	if err := s.groupService.Delete(ctx, groupID, req.Password); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Group deleted successfully"})
}

// VerifyGroupPassword checks a group password without mutating anything
func (s *Server) VerifyGroupPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()

	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	var req struct {
		Password string `json:"password"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	if err := s.groupService.VerifyPassword(ctx, groupID, req.Password); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password verified successfully"})
}

// LikeGroup increments the group's like counter
func (s *Server) LikeGroup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	likeCount, err := s.groupService.Like(ctx, groupID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Group liked successfully",
		"likeCount": likeCount,
	})
}

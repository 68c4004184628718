package server

import (
	"zogakzip/internal/models"
	"zogakzip/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment attaches a comment to a post
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req service.CreateCommentInput
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(ctx, postID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

// GetComments returns all comments for a post in insertion order
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	list, err := s.commentService.ListByPost(ctx, postID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(listEnvelope(list.TotalItemCount, list.Items))
}

// UpdateComment updates a comment after verifying its password
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req service.UpdateCommentInput
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Update(ctx, commentID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comment updated successfully",
		"comment": comment,
	})
}

// DeleteComment removes a comment after verifying its password
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Password string `json:"password"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	if err := s.commentService.Delete(ctx, commentID, req.Password); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}

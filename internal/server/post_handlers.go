package server

import (
	"zogakzip/internal/models"
	"zogakzip/internal/repository"
	"zogakzip/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost publishes a post into a group
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	var req service.CreatePostInput
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(ctx, groupID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    post,
	})
}

// GetGroupPosts lists a group's posts with optional filtering, searching and sorting
func (s *Server) GetGroupPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	filter := repository.PostFilter{
		IsPublic: parseBoolQuery(c, "isPublic"),
		Keyword:  c.Query("keyword"),
		SortBy:   c.Query("sortBy"),
	}

	list, err := s.postService.ListByGroup(ctx, groupID, filter)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(listEnvelope(list.TotalItemCount, list.Items))
}

// GetPost returns the full post. Private posts require the password as
// a query parameter.
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(ctx, postID, c.Query("password"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost updates a post after verifying its password
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req service.UpdatePostInput
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Update(ctx, postID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post updated successfully",
		"post":    post,
	})
}

// DeletePost removes a post and its comments
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		PostPassword string `json:"postPassword"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	if err := s.postService.Delete(ctx, postID, req.PostPassword); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

// VerifyPostPassword checks a post password without mutating anything
func (s *Server) VerifyPostPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Password string `json:"password"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	if err := s.postService.VerifyPassword(ctx, postID, req.Password); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password verified successfully"})
}

// LikePost increments the post's like counter
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	likeCount, err := s.postService.Like(ctx, postID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Post liked successfully",
		"likeCount": likeCount,
	})
}

// GetPostVisibility reports only whether the post is public
func (s *Server) GetPostVisibility(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	visibility, err := s.postService.IsPublic(ctx, postID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(visibility)
}

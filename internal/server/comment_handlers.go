package server

import (
	"fable/internal/models"
	"fable/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/stories/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.Context()

	comments, err := s.commentService.ListComments(ctx, c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comments)
}

// AddComment handles POST /api/stories/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.Context()

	var req service.CreateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(ctx, c.Params("id"), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := s.commentService.DeleteComment(ctx, c.Params("id")); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

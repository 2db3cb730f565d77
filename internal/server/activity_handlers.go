package server

import (
	"fable/internal/middleware"
	"fable/internal/models"
	"fable/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RecordActivity handles POST /api/userActivity
func (s *Server) RecordActivity(c *fiber.Ctx) error {
	ctx := c.Context()

	var req service.RecordActivityInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if err := s.activityService.Record(ctx, req); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"status": "recorded"})
}

// Recommend handles GET /api/recommend/:userId. This endpoint never fails:
// a user without usable history, or an internal error, yields an empty list.
func (s *Server) Recommend(c *fiber.Ctx) error {
	ctx := c.Context()

	stories, err := s.activityService.Recommend(ctx, c.Params("userId"))
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "recommendation failed",
			"user_id", c.Params("userId"), "error", err)
		return c.JSON([]models.StoryView{})
	}
	return c.JSON(stories)
}

package server

import (
	"fable/internal/models"
	"fable/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetStories handles GET /api/stories?q=
func (s *Server) GetStories(c *fiber.Ctx) error {
	ctx := c.Context()
	stories := s.storyService.ListStories(ctx, c.Query("q"))

	return c.JSON(fiber.Map{
		"data": stories,
		"meta": fiber.Map{"total": len(stories)},
	})
}

// GetStory handles GET /api/stories/:id
func (s *Server) GetStory(c *fiber.Ctx) error {
	ctx := c.Context()

	story, err := s.storyService.GetStory(ctx, c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(story)
}

// CreateStory handles POST /api/stories
func (s *Server) CreateStory(c *fiber.Ctx) error {
	ctx := c.Context()

	var req service.CreateStoryInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	story, err := s.storyService.CreateStory(ctx, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(story)
}

// UpdateStory handles PUT /api/stories/:id
func (s *Server) UpdateStory(c *fiber.Ctx) error {
	ctx := c.Context()

	var patch models.StoryPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	story, err := s.storyService.UpdateStory(ctx, c.Params("id"), patch)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(story)
}

// DeleteStory handles DELETE /api/stories/:id
func (s *Server) DeleteStory(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := s.storyService.DeleteStory(ctx, c.Params("id")); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikeStory handles POST /api/stories/:id/like
func (s *Server) LikeStory(c *fiber.Ctx) error {
	ctx := c.Context()

	story, err := s.storyService.LikeStory(ctx, c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(story)
}

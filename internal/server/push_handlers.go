package server

import (
	"fable/internal/models"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gofiber/fiber/v2"
)

// Subscribe handles POST /subscribe. The body is a browser PushSubscription
// descriptor; registration triggers one best-effort test delivery.
func (s *Server) Subscribe(c *fiber.Ctx) error {
	ctx := c.Context()

	var sub webpush.Subscription
	if err := c.BodyParser(&sub); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid subscription"))
	}

	if err := s.dispatcher.Subscribe(ctx, &sub); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "subscribed"})
}

// Unsubscribe handles DELETE /subscribe, removing a registration by its
// endpoint.
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Endpoint string `json:"endpoint"`
	}
	if err := c.BodyParser(&req); err != nil || req.Endpoint == "" {
		return models.RespondWithError(c, models.NewValidationError("Subscription endpoint is required"))
	}

	if err := s.dispatcher.Unsubscribe(ctx, req.Endpoint); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

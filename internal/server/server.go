// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"time"

	"fable/internal/activity"
	"fable/internal/config"
	"fable/internal/middleware"
	"fable/internal/models"
	"fable/internal/push"
	"fable/internal/service"
	"fable/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	store           *store.Store
	promMiddleware  *fiberprometheus.FiberPrometheus
	dispatcher      *push.Dispatcher
	storyService    *service.StoryService
	commentService  *service.CommentService
	userService     *service.UserService
	activityService *service.ActivityService
}

// NewServer creates a new server instance with all dependencies. A missing
// or unreadable VAPID key file is fatal.
func NewServer(cfg *config.Config) (*Server, error) {
	keys, err := push.LoadVAPIDKeys(cfg.VAPIDKeyFile)
	if err != nil {
		return nil, err
	}
	dispatcher := push.NewDispatcher(keys, cfg.PushContact)

	var persister store.Persister
	if cfg.StoreBackend == config.BackendFile {
		persister = store.NewFilePersister(cfg.DataFile)
	}
	st := store.New(persister)
	log := activity.NewLog(cfg.ActivityLog)

	prom := middleware.InitMetrics("fable-api")

	return &Server{
		config:          cfg,
		store:           st,
		promMiddleware:  prom,
		dispatcher:      dispatcher,
		storyService:    service.NewStoryService(st, dispatcher),
		commentService:  service.NewCommentService(st),
		userService:     service.NewUserService(st),
		activityService: service.NewActivityService(log, st),
	}, nil
}

// ErrorHandler is the app-level Fiber error handler: router errors keep
// their status, anything unexpected is generalized to a 500 with a generic
// body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}
	return models.RespondWithError(c, err)
}

// SetupMiddleware configures the app-wide middleware stack.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request and trace IDs
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Push subscription registration
	app.Post("/subscribe", s.Subscribe)
	app.Delete("/subscribe", s.Unsubscribe)

	api := app.Group("/api")

	// Story routes
	stories := api.Group("/stories")
	stories.Get("/", s.GetStories)
	stories.Post("/", s.CreateStory)
	stories.Get("/:id", s.GetStory)
	stories.Put("/:id", s.UpdateStory)
	stories.Delete("/:id", s.DeleteStory)
	stories.Post("/:id/like", s.LikeStory)
	stories.Get("/:id/comments", s.GetComments)
	stories.Post("/:id/comments", s.AddComment)

	api.Delete("/comments/:id", s.DeleteComment)

	// User routes
	users := api.Group("/users")
	users.Post("/", s.CreateUser)
	users.Get("/:id", s.GetUser)

	// Activity and recommendations
	api.Post("/userActivity", s.RecordActivity)
	api.Get("/recommend/:userId", s.Recommend)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports that the store is loaded and serving.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	doc := s.store.Document(c.Context())
	return c.JSON(fiber.Map{
		"status":   "ok",
		"stories":  len(doc.Stories),
		"users":    len(doc.Users),
		"comments": len(doc.Comments),
	})
}

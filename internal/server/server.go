// Package server contains the HTTP handlers and route table for the application.
package server

import (
	"context"
	"fmt"
	"time"

	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/middleware"
	"warbler/internal/repository"
	"warbler/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	sessions       *session.Store
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository

	authService    *service.AuthService
	userService    *service.UserService
	messageService *service.MessageService
	socialService  *service.SocialService
}

// NewServer creates a new server instance, establishing the database and
// Redis connections from the configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("warbler"),
		sessions: session.New(session.Config{
			KeyLookup:      "cookie:" + sessionCookieName,
			Expiration:     7 * 24 * time.Hour,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
			KeyGenerator: func() string {
				return uuid.New().String()
			},
		}),
		userRepo:    userRepo,
		messageRepo: messageRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
	}

	s.authService = service.NewAuthService(userRepo)
	s.userService = service.NewUserService(userRepo)
	s.messageService = service.NewMessageService(messageRepo)
	s.socialService = service.NewSocialService(followRepo, likeRepo, userRepo, messageRepo)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID into logs
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	app.Use(s.promMiddleware.Middleware)

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Metrics endpoint for Prometheus
	s.promMiddleware.RegisterAt(app, "/metrics")

	app.Get("/health", s.HealthCheck)

	app.Get("/", s.Home)

	// Auth routes
	app.Get("/signup", s.SignupPage)
	app.Post("/signup", s.Signup)
	app.Get("/login", s.LoginPage)
	app.Post("/login", s.Login)
	app.Get("/logout", s.Logout)

	// User routes. Specific paths go before the generic /users/:id routes.
	users := app.Group("/users")
	users.Get("/", s.ListUsers)
	users.Get("/profile", s.ProfilePage)
	users.Post("/profile", s.UpdateProfile)
	users.Post("/delete", s.DeleteUser)
	users.Post("/follow/:id", s.AddFollow)
	users.Post("/stop-following/:id", s.StopFollowing)
	users.Post("/add_like/:messageId", s.AddLike)
	users.Get("/:id/following", s.ShowFollowing)
	users.Get("/:id/followers", s.ShowFollowers)
	users.Get("/:id/likes", s.ShowLikes)
	users.Get("/:id", s.ShowUser)

	// Message routes
	messages := app.Group("/messages")
	messages.Get("/new", s.NewMessagePage)
	messages.Post("/new", s.NewMessage)
	messages.Post("/:id/delete", s.DeleteMessage)
	messages.Get("/:id", s.ShowMessage)
}

// App builds a Fiber application with middleware and routes installed.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Warbler",
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// HealthCheck reports liveness and database reachability.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases server-held resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package server

import (
	"context"
	"fmt"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config *config.Config
	db     *gorm.DB
	app    *fiber.App
	tokens *auth.TokenService

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	tagRepo     repository.TagRepository

	userService    *service.UserService
	postService    *service.PostService
	commentService *service.CommentService
	tagService     *service.TagService
}

// NewServer creates a server instance with all dependencies, connecting to
// the configured database.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db)
}

// NewServerWithDeps creates a Server using an already-initialized database.
// Used by tests and bootstrap layers.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("token service init failed: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tagRepo := repository.NewTagRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		tokens:      tokens,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		tagRepo:     tagRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.postService = service.NewPostService(postRepo, tagRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	s.tagService = service.NewTagService(tagRepo)

	s.app = fiber.New(fiber.Config{
		AppName: "inkwell-api",
	})
	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(cors.New())
	s.app.Use(middleware.ContextMiddleware())
	s.app.Use(middleware.RequestLogger())

	prom := fiberprometheus.New("inkwell-api")
	prom.RegisterAt(s.app, "/metrics")
	s.app.Use(prom.Middleware)
}

func (s *Server) setupRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api")
	authRequired := middleware.AuthRequired(s.tokens, s.userRepo)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.Register)
	authGroup.Post("/login", s.Login)
	authGroup.Get("/me", authRequired, s.Me)

	users := api.Group("/users", authRequired)
	users.Post("/", s.CreateUser)
	users.Get("/", s.ListUsers)
	users.Get("/:id", s.GetUser)
	users.Get("/:id/posts", s.ListUserPosts)
	users.Put("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	posts := api.Group("/posts", authRequired)
	posts.Post("/", s.CreatePost)
	posts.Get("/", s.ListPosts)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)
	posts.Post("/:id/comments", s.CreateComment)
	posts.Get("/:id/comments", s.ListComments)

	comments := api.Group("/comments", authRequired)
	comments.Get("/:id", s.GetComment)
	comments.Put("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	tags := api.Group("/tags", authRequired)
	tags.Post("/", s.CreateTag)
	tags.Get("/", s.ListTags)
	tags.Get("/:id", s.GetTag)
	tags.Put("/:id", s.UpdateTag)
	tags.Delete("/:id", s.DeleteTag)
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

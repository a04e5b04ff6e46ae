package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"biblioteca-backend/internal/config"
	infraCache "biblioteca-backend/internal/infrastructure/cache"
	"biblioteca-backend/internal/infrastructure/database"
	"biblioteca-backend/internal/infrastructure/email"
	"biblioteca-backend/internal/infrastructure/queue"
	"biblioteca-backend/internal/infrastructure/storage"
	"biblioteca-backend/internal/session"
	"biblioteca-backend/internal/shared/middleware"
	"biblioteca-backend/pkg/cache"
	"biblioteca-backend/pkg/jwt"

	"biblioteca-backend/internal/domains/author"
	authorHandler "biblioteca-backend/internal/domains/author/handler"
	authorRepo "biblioteca-backend/internal/domains/author/repository"
	authorService "biblioteca-backend/internal/domains/author/service"
	"biblioteca-backend/internal/domains/book"
	bookHandler "biblioteca-backend/internal/domains/book/handler"
	bookRepo "biblioteca-backend/internal/domains/book/repository"
	bookService "biblioteca-backend/internal/domains/book/service"
	"biblioteca-backend/internal/domains/category"
	categoryHandler "biblioteca-backend/internal/domains/category/handler"
	categoryRepo "biblioteca-backend/internal/domains/category/repository"
	categoryService "biblioteca-backend/internal/domains/category/service"
	"biblioteca-backend/internal/domains/stats"
	statsHandler "biblioteca-backend/internal/domains/stats/handler"
	statsRepo "biblioteca-backend/internal/domains/stats/repository"
	statsService "biblioteca-backend/internal/domains/stats/service"
	"biblioteca-backend/internal/domains/user"
	userHandler "biblioteca-backend/internal/domains/user/handler"
	userRepo "biblioteca-backend/internal/domains/user/repository"
	userService "biblioteca-backend/internal/domains/user/service"
)

// Container holds the full dependency graph of the application.
// Everything in it is a singleton built once at startup.
type Container struct {
	Config   *config.Config
	DB       *database.PostgresDB
	Cache    cache.Cache
	Sessions *session.Manager
	Assets   storage.AssetStorage
	Enqueuer *queue.Enqueuer
	Mailer   email.Mailer
	Auth     *middleware.Auth

	UserRepo     user.Repository
	AuthorRepo   author.Repository
	CategoryRepo category.Repository
	BookRepo     book.Repository
	StatsRepo    stats.Repository

	UserService     user.Service
	AuthorService   author.Service
	CategoryService category.Service
	BookService     book.Service
	StatsService    stats.Service

	UserHandler     *userHandler.UserHandler
	AuthorHandler   *authorHandler.AuthorHandler
	CategoryHandler *categoryHandler.CategoryHandler
	BookHandler     *bookHandler.BookHandler
	StatsHandler    *statsHandler.StatsHandler
}

// NewContainer builds the dependency graph in order: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("config loaded (environment: %s)", cfg.App.Environment)

	db := database.NewPostgresDB(&cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("database connected")

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		// Sessions live in Redis, there is no degraded mode without it.
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	c.Cache = redisCache
	log.Println("redis connected")

	c.Sessions = session.NewManager(c.Cache, cfg.Session.TTL)
	c.Auth = middleware.NewAuth(c.Sessions, cfg.Session.CookieName)

	c.Assets, err = newAssetStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init asset storage: %w", err)
	}
	log.Printf("asset storage ready (backend: %s)", cfg.Upload.Backend)

	c.Enqueuer = queue.NewEnqueuer(cfg.Worker.RedisAddr)
	c.Mailer = email.NewSMTPMailer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.From)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func newAssetStorage(cfg *config.Config) (storage.AssetStorage, error) {
	if cfg.Upload.Backend == "minio" {
		return storage.NewMinIOStorage(cfg.MinIO)
	}
	return storage.NewDiskStorage(cfg.Upload.Dir)
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.StatsRepo = statsRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	recovery := jwt.NewManager(c.Config.Recovery.Secret, c.Config.Recovery.TokenTTL)

	c.UserService = userService.NewUserService(c.UserRepo, recovery)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.Assets,
		storage.NewThumbnailer(),
		c.Enqueuer,
	)
	c.StatsService = statsService.NewStatsService(c.StatsRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.Sessions, c.Enqueuer, c.Config)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.Config)
	c.StatsHandler = statsHandler.NewStatsHandler(c.StatsService)
}

// Close releases held connections, connection errors on shutdown are
// logged and swallowed.
func (c *Container) Close() {
	if c.Enqueuer != nil {
		if err := c.Enqueuer.Close(); err != nil {
			log.Printf("closing task queue: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

package container

import (
	"context"
	"fmt"
	"time"

	"library-api/internal/config"
	authorHandler "library-api/internal/domains/author/handler"
	authorRepo "library-api/internal/domains/author/repository"
	authorService "library-api/internal/domains/author/service"
	bookHandler "library-api/internal/domains/book/handler"
	bookRepo "library-api/internal/domains/book/repository"
	bookService "library-api/internal/domains/book/service"
	infraCache "library-api/internal/infrastructure/cache"
	"library-api/internal/infrastructure/database"
	"library-api/internal/infrastructure/memory"
	"library-api/internal/infrastructure/seed"
	"library-api/internal/shared/middleware"
	"library-api/pkg/cache"
	"library-api/pkg/logger"
)

// Container holds every long-lived dependency of the API process.
//
// Initialization order:
//  1. Config
//  2. Store (SQL database or in-memory) and optional Redis cache
//  3. Repositories (cache decorators wrap the store when Redis is up)
//  4. Services
//  5. Handlers
type Container struct {
	Config *config.Config

	// DB is nil when the in-memory store is selected.
	DB *database.DB
	// Cache is nil unless Redis is enabled and reachable.
	Cache cache.Cache
	redis *infraCache.RedisCache

	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface

	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface

	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler

	RateLimiter *middleware.RateLimiter

	stop context.CancelFunc
}

// ========================================
// CONSTRUCTORS
// ========================================

// NewContainer loads configuration from the environment and builds the
// dependency graph.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	return New(context.Background(), cfg)
}

// New builds the dependency graph for cfg.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger.Info("Initializing container", map[string]interface{}{
		"environment": cfg.App.Environment,
		"driver":      cfg.Database.Driver,
	})

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: STORE
	// ========================================
	// SQL store connects with retry and migrates; memory needs neither
	if err := c.initStore(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 2: SEED
	// ========================================
	// Runs before the cache decorators so sample rows bypass Redis
	if cfg.Database.Seed {
		if _, err := seed.Run(ctx, c.AuthorRepo, c.BookRepo); err != nil {
			c.Cleanup()
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
	}

	// ========================================
	// STEP 3: CACHE (OPTIONAL)
	// ========================================
	if cfg.Redis.Enabled {
		c.initCache(ctx)
	}

	// ========================================
	// STEP 4: SERVICES & HANDLERS
	// ========================================
	c.initServices()
	c.initHandlers()

	// ========================================
	// STEP 5: RATE LIMITER
	// ========================================
	// Eviction loop stops on Cleanup
	if cfg.HTTP.RateLimitRPS > 0 {
		runCtx, cancel := context.WithCancel(context.Background())
		c.stop = cancel
		c.RateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
		go c.RateLimiter.Run(runCtx)
		logger.Debug("Rate limiter started")
	}

	logger.Info("Container initialized", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStore(ctx context.Context) error {
	if c.Config.Database.Driver == config.DriverMemory {
		store := memory.NewStore()
		c.AuthorRepo = store.Authors()
		c.BookRepo = store.Books()
		logger.Info("Using in-memory store", nil)
		return nil
	}

	db := database.NewDB(c.Config.DBConfig())
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if c.Config.ShouldMigrate() {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	c.AuthorRepo = authorRepo.NewSQLRepository(db)
	c.BookRepo = bookRepo.NewSQLRepository(db)
	return nil
}

// initCache wraps the repositories with read-through caching. A Redis that
// cannot be reached is logged and skipped.
func (c *Container) initCache(ctx context.Context) {
	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rc.Connect(connectCtx); err != nil {
		logger.Error("Redis connection failed, continuing without cache", err)
		_ = rc.Close()
		return
	}

	c.redis = rc
	c.Cache = rc
	ttl := c.Config.Redis.TTL
	c.AuthorRepo = authorRepo.NewCachedRepository(c.AuthorRepo, rc, ttl)
	c.BookRepo = bookRepo.NewCachedRepository(c.BookRepo, rc, ttl)
	logger.Info("Redis cache enabled", map[string]interface{}{"ttl": ttl.String()})
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, time.Now)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, time.Now)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
}

// ========================================
// LIFECYCLE
// ========================================

// Cleanup releases the database, cache and background workers.
func (c *Container) Cleanup() {
	if c.stop != nil {
		c.stop()
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	logger.Info("Container cleanup completed", nil)
}

package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"blog-gateway/internal/config"
	infraCache "blog-gateway/internal/infrastructure/cache"
	"blog-gateway/internal/infrastructure/remote"
	"blog-gateway/internal/shared/middleware"
	"blog-gateway/pkg/cache"

	authorHandler "blog-gateway/internal/domains/author/handler"
	authorRepo "blog-gateway/internal/domains/author/repository"
	authorService "blog-gateway/internal/domains/author/service"
	blogHandler "blog-gateway/internal/domains/blog/handler"
	blogRepo "blog-gateway/internal/domains/blog/repository"
	blogService "blog-gateway/internal/domains/blog/service"
	revalidateHandler "blog-gateway/internal/domains/revalidate/handler"
	revalidateRepo "blog-gateway/internal/domains/revalidate/repository"
	revalidateService "blog-gateway/internal/domains/revalidate/service"
	storageHandler "blog-gateway/internal/domains/storage/handler"
	storageRepo "blog-gateway/internal/domains/storage/repository"
	taxonomyHandler "blog-gateway/internal/domains/taxonomy/handler"
	taxonomyRepo "blog-gateway/internal/domains/taxonomy/repository"
	taxonomyService "blog-gateway/internal/domains/taxonomy/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application.
// This struct is the root of the dependency graph.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	// Shared across all domains. Lifecycle: singleton.

	Config      *config.Config         // Application config
	Redis       *infraCache.RedisStore // Tag generations + rate limit counters
	Remote      *remote.Client         // Typed client for the CMS backend
	Coordinator *cache.Coordinator     // In-process query cache
	RateLimiter middleware.RateLimiter

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	BlogRepo     blogRepo.RepositoryInterface
	AuthorRepo   authorRepo.RepositoryInterface
	TaxonomyRepo taxonomyRepo.RepositoryInterface
	StorageRepo  storageRepo.RepositoryInterface
	TagStore     *revalidateRepo.TagStore

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	BlogService       blogService.ServiceInterface
	AuthorService     authorService.ServiceInterface
	TaxonomyService   taxonomyService.ServiceInterface
	RevalidateService *revalidateService.RevalidateService

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	BlogHandler       *blogHandler.Handler
	AuthorHandler     *authorHandler.Handler
	TaxonomyHandler   *taxonomyHandler.Handler
	StorageHandler    *storageHandler.Handler
	RevalidateHandler *revalidateHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer creates and initializes the whole dependency graph.
//
// Initialization order matters:
// 1. Config (depends on nothing)
// 2. Infrastructure (Redis, remote client, coordinator) - depends on Config
// 3. Repositories - depend on infrastructure
// 4. Services - depend on repositories
// 5. Handlers - depend on services
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE REDIS
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	c.Redis = infraCache.NewRedisStore(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Redis.Connect(ctx); err != nil {
		// Redis failure is not fatal: cached reads still work, only tag
		// generations and rate limiting degrade.
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}

	// ========================================
	// STEP 3: INITIALIZE REMOTE CLIENT + COORDINATOR
	// ========================================
	c.Remote = remote.NewClient(cfg.Remote)
	c.Coordinator = cache.NewCoordinator(cache.Config{})
	c.RateLimiter = middleware.NewStoreRateLimiter(
		c.Redis,
		cfg.RateLimit.MaxRequests,
		cfg.RateLimit.Window,
	)
	log.Printf("✅ Remote client ready (%s)", cfg.Remote.BaseURL)

	// ========================================
	// STEP 4: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")
	c.initRepositories()

	// ========================================
	// STEP 5: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")
	c.initServices()

	// ========================================
	// STEP 6: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	c.BlogRepo = blogRepo.NewBlogRepository(c.Remote)
	c.AuthorRepo = authorRepo.NewAuthorRepository(c.Remote)
	c.TaxonomyRepo = taxonomyRepo.NewTaxonomyRepository(c.Remote)
	c.StorageRepo = storageRepo.NewStorageRepository(c.Remote)
	c.TagStore = revalidateRepo.NewTagStore(c.Redis)
}

func (c *Container) initServices() {
	c.RevalidateService = revalidateService.NewService(c.TagStore)

	c.BlogService = blogService.NewService(
		c.BlogRepo,
		c.Coordinator,
		c.RevalidateService, // mutations bump tags after the remote write
		c.Config.Staleness,
	)
	c.AuthorService = authorService.NewService(
		c.AuthorRepo,
		c.Coordinator,
		c.Config.Staleness,
	)
	c.TaxonomyService = taxonomyService.NewService(
		c.TaxonomyRepo,
		c.Coordinator,
		c.Config.Staleness,
	)
}

func (c *Container) initHandlers() {
	c.BlogHandler = blogHandler.NewHandler(c.BlogService)
	c.AuthorHandler = authorHandler.NewHandler(c.AuthorService)
	c.TaxonomyHandler = taxonomyHandler.NewHandler(c.TaxonomyService)
	c.StorageHandler = storageHandler.NewHandler(c.StorageRepo)
	c.RevalidateHandler = revalidateHandler.NewHandler(c.RevalidateService)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup releases resources on shutdown.
// Called from the server's graceful shutdown path.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.Coordinator != nil {
		c.Coordinator.Close()
		log.Println("✅ Cache coordinator stopped")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}

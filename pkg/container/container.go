package container

import (
	"context"
	"fmt"

	"bookstore-api/config"
	authorRepo "bookstore-api/domains/author/repository"
	authorService "bookstore-api/domains/author/service"
	bookRepo "bookstore-api/domains/book/repository"
	bookService "bookstore-api/domains/book/service"
	customerRepo "bookstore-api/domains/customer/repository"
	customerService "bookstore-api/domains/customer/service"
	genreRepo "bookstore-api/domains/genre/repository"
	genreService "bookstore-api/domains/genre/service"
	languageRepo "bookstore-api/domains/language/repository"
	languageService "bookstore-api/domains/language/service"
	orderRepo "bookstore-api/domains/order/repository"
	orderService "bookstore-api/domains/order/service"
	publisherRepo "bookstore-api/domains/publisher/repository"
	publisherService "bookstore-api/domains/publisher/service"
	reviewRepo "bookstore-api/domains/review/repository"
	reviewService "bookstore-api/domains/review/service"
	infraCache "bookstore-api/infrastructure/cache"
	"bookstore-api/infrastructure/database"
	"bookstore-api/pkg/cache"
	"bookstore-api/pkg/logger"
)

// Container holds the full dependency graph: config, infrastructure,
// repositories and services, each a singleton for the app lifetime.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	AuthorRepo    authorRepo.RepositoryInterface
	GenreRepo     genreRepo.RepositoryInterface
	PublisherRepo publisherRepo.RepositoryInterface
	LanguageRepo  languageRepo.RepositoryInterface
	CustomerRepo  customerRepo.RepositoryInterface
	ReviewRepo    reviewRepo.RepositoryInterface
	BookRepo      bookRepo.RepositoryInterface
	OrderRepo     orderRepo.OrderRepository

	AuthorService    authorService.ServiceInterface
	GenreService     genreService.ServiceInterface
	PublisherService publisherService.ServiceInterface
	LanguageService  languageService.ServiceInterface
	CustomerService  customerService.ServiceInterface
	ReviewService    reviewService.ServiceInterface
	BookService      bookService.ServiceInterface
	OrderService     orderService.ServiceInterface
}

// NewContainer builds the dependency graph in order: config first, then
// infrastructure, then repositories, then services. The caller owns the
// returned container and must Close it.
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)

	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisClient := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisClient

	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.GenreRepo = genreRepo.NewPostgresRepository(pool)
	c.PublisherRepo = publisherRepo.NewPostgresRepository(pool)
	c.LanguageRepo = languageRepo.NewPostgresRepository(pool)
	c.CustomerRepo = customerRepo.NewPostgresRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.Cache)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(pool)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.GenreService = genreService.NewGenreService(c.GenreRepo)
	c.PublisherService = publisherService.NewPublisherService(c.PublisherRepo)
	c.LanguageService = languageService.NewLanguageService(c.LanguageRepo)
	c.CustomerService = customerService.NewCustomerService(c.CustomerRepo)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.CustomerRepo)
	c.BookService = bookService.NewBookService(c.BookRepo)
	c.OrderService = orderService.NewOrderService(c.OrderRepo, c.BookRepo, c.CustomerRepo)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

// HealthCheck pings the database and the cache.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	if err := c.Cache.Ping(ctx); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}
	return nil
}

// Close releases infrastructure resources in reverse initialization order.
func (c *Container) Close() {
	if c.Cache != nil {
		if closer, ok := c.Cache.(*infraCache.RedisClient); ok {
			if err := closer.Close(); err != nil {
				logger.Warn("failed to close redis client", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

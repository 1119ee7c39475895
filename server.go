package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"productsapi/internal/config"
	"productsapi/internal/events"
	"productsapi/internal/handlers"
	"productsapi/internal/middleware"
	"productsapi/internal/models"
	"productsapi/internal/repositories"
	"productsapi/internal/services"
	"productsapi/pkg/kafka"
	"productsapi/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// server bundles the fiber app with the resources it must release on exit.
type server struct {
	app            *fiber.App
	productHandler *handlers.ProductHandler
	db             *gorm.DB
	redis          *redis.Client
	publisher      events.Publisher
}

// newServer wires repositories, services and handlers from cfg.
func newServer(cfg config.Config) (*server, error) {
	s := &server{}

	repo, err := s.openRepository(cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Addr != "" {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		repo = repositories.NewCachedProductRepository(repo, s.redis, cfg.Cache.TTL)
		log.Printf("Product cache enabled on %s (ttl %s)", cfg.Redis.Addr, cfg.Cache.TTL)
	}

	s.publisher, err = newPublisher(cfg)
	if err != nil {
		s.close()
		return nil, err
	}

	productService := services.NewProductService(repo, s.publisher)
	s.productHandler = handlers.NewProductHandler(productService, cfg.Pagination.MaxSize)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog())

	api := app.Group("/api")
	s.productHandler.RegisterRoutes(api)

	app.Get("/health", s.handleHealth)
	app.Get("/swagger/*", swagger.HandlerDefault)

	s.app = app
	return s, nil
}

func (s *server) openRepository(cfg config.DatabaseConfig) (repositories.ProductRepository, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverMemory:
		log.Println("Using in-memory product repository")
		return repositories.NewMockProductRepository(), nil
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	s.db = db
	return repositories.NewGORMProductRepository(db), nil
}

func newPublisher(cfg config.Config) (events.Publisher, error) {
	switch cfg.Events.Driver {
	case config.EventsRabbitMQ:
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Exchange: cfg.RabbitMQ.Exchange})
		if err != nil {
			return nil, err
		}
		return events.NewRabbitMQPublisher(client), nil
	case config.EventsKafka:
		return events.NewKafkaPublisher(kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})), nil
	default:
		return events.NopPublisher{}, nil
	}
}

// handleHealth reports the state of the database and cache connections.
func (s *server) handleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	body := fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	}

	if s.db != nil {
		body["database"] = "connected"
		sqlDB, err := s.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status = fiber.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["database"] = err.Error()
		}
	}
	if s.redis != nil {
		body["cache"] = "connected"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			// The cache is optional; report it without failing the check.
			body["cache"] = err.Error()
		}
	}

	return c.Status(status).JSON(body)
}

// close releases every resource opened by newServer.
func (s *server) close() error {
	var errs []error
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("database: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}

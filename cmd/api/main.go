package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"blood-connect/internal/config"
	"blood-connect/internal/handler"
	"blood-connect/internal/middleware"
	"blood-connect/internal/pkg/fixtures"
	"blood-connect/internal/pkg/logging"
	"blood-connect/internal/repository"
	"blood-connect/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.Environment)
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("no .env file found, using environment variables")
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	store, closeStore, err := config.NewRecordStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open record store", zap.Error(err))
	}
	defer func() { _ = closeStore() }()

	repos := repository.NewRepositories(store)
	if cfg.SeedOnStart {
		seed(ctx, log, repos, cfg)
	}

	var minioClient *minio.Client
	if cfg.MinIOEndpoint != "" {
		minioClient, err = config.NewMinIOClient(ctx, cfg)
		if err != nil {
			log.Warn("failed to connect to MinIO, snapshots disabled", zap.Error(err))
			minioClient = nil
		}
	}

	services, err := service.NewServices(repos, minioClient, cfg, log)
	if err != nil {
		log.Fatal("failed to build services", zap.Error(err))
	}
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	handler.RegisterRoutes(app, handlers, services.Auth)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server starting", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func seed(ctx context.Context, log *zap.Logger, repos *repository.Repositories, cfg *config.Config) {
	var (
		data *repository.SeedData
		err  error
	)
	if cfg.FixturesPath != "" {
		data, err = fixtures.LoadFile(cfg.FixturesPath, bcrypt.DefaultCost)
	} else {
		data, err = fixtures.Default(bcrypt.DefaultCost)
	}
	if err != nil {
		log.Fatal("failed to load fixtures", zap.Error(err))
	}

	seeded, err := repos.Seed(ctx, data)
	if err != nil {
		log.Fatal("failed to seed store", zap.Error(err))
	}
	if len(seeded) > 0 {
		log.Info("seeded empty collections", zap.Strings("collections", seeded))
	}
}

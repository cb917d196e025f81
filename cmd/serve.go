package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "review-backend/docs"
	"review-backend/internal/config"
	"review-backend/internal/database"
	"review-backend/internal/handlers"
	"review-backend/internal/middleware"
	"review-backend/internal/repository"
	"review-backend/internal/routes"
	"review-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title Review Aggregation API
// @version 1.0
// @description REST API for rating and commenting on creative works, with role-based moderation and email-based signup.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := setupLogger()

	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	tokens := services.NewTokenService(cfg.Auth)
	mailer := services.NewMailer(cfg.Mail, log)
	authService := services.NewAuthService(userRepo, tokens, mailer, log)
	userService := services.NewUserService(userRepo, log)
	catalogService := services.NewCatalogService(categoryRepo, genreRepo, log)
	titleService := services.NewTitleService(titleRepo, categoryRepo, genreRepo, cfg.Catalog, log)
	reviewService := services.NewReviewService(reviewRepo, commentRepo, titleRepo, log)

	storageService, err := services.NewStorageService(&cfg.MinIO, log)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Review Aggregation API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: customErrorHandler(log),
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(db))
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	routes.Setup(app, routes.Deps{
		Authenticate: middleware.Authenticate(tokens, userRepo),
		Auth:         handlers.NewAuthHandler(authService, log),
		Categories:   handlers.NewCategoryHandler(catalogService, log),
		Genres:       handlers.NewGenreHandler(catalogService, log),
		Titles:       handlers.NewTitleHandler(titleService, log),
		Reviews:      handlers.NewReviewHandler(reviewService, log),
		Comments:     handlers.NewCommentHandler(reviewService, log),
		Users:        handlers.NewUserHandler(userService, log),
		Upload:       handlers.NewUploadHandler(storageService, log),
	})

	go gracefulShutdown(app, log)

	log.Infof("Review Aggregation API starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
	return nil
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: false,
		MaxAge:           86400,
	}))
}

func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			dbStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "review-backend",
			"version":   "1.0.0",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		}).Error("Request error")

		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"code":    code,
			"message": err.Error(),
		})
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"jobboard-service/internal/api"
	"jobboard-service/internal/config"
	"jobboard-service/internal/events"
	"jobboard-service/internal/jwt"
	"jobboard-service/internal/repository"
	"jobboard-service/internal/service"
	"jobboard-service/internal/tracing"
	"jobboard-service/internal/upload"
	_ "jobboard-service/migrations"
)

func main() {
	cfg := config.Load()

	api.SetupGlobalHandler("jobboard-service")

	shutdownTracer, err := tracing.InitTracerProvider("jobboard-service")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	db := connectDB(cfg)
	defer db.Close()

	eventPublisher, err := events.NewNatsPublisher(cfg.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	imageStore, err := upload.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	userRepo := repository.NewPostgresUserRepository(db)
	offerRepo := repository.NewPostgresJobOfferRepository(db)

	tokenService := jwt.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authService := service.NewAuthService(userRepo, tokenService, eventPublisher)
	offerService := service.NewJobOfferService(offerRepo, eventPublisher)

	authHandler := api.NewAuthHandler(authService)
	offerHandler := api.NewJobOfferHandler(offerService, imageStore)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "jobboard-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authGuard := api.AuthMiddleware(tokenService)

	offerRoutes := app.Group("/job_offers")
	offerRoutes.Get("/", offerHandler.List)
	offerRoutes.Get("/:id", offerHandler.GetByID)
	offerRoutes.Post("/", authGuard, offerHandler.Create)
	offerRoutes.Patch("/:id", authGuard, offerHandler.Patch)
	offerRoutes.Delete("/:id", authGuard, offerHandler.Delete)

	userRoutes := app.Group("/users")
	userRoutes.Post("/signup", authHandler.Signup)
	userRoutes.Post("/login", authHandler.Login)
	userRoutes.Delete("/:id", authGuard, authHandler.DeleteUser)

	log.Printf("Listening jobboard-service on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func connectDB(cfg *config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg *config.Config) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"hfp-go-api/internal/config"
	"hfp-go-api/internal/handlers"
	"hfp-go-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize services
	cacheService := services.NewCacheService(cfg)
	defer cacheService.Close()

	orchestrator := services.NewProjectionOrchestrator(cfg, cacheService)
	scenarioStore := services.NewScenarioStore(cacheService.Firestore())
	ratesService := services.NewRatesService(cfg, cacheService)

	seedDefaultScenario(cfg, scenarioStore)

	// Initialize handlers
	projectionHandler := handlers.NewProjectionHandler(orchestrator)
	scenarioHandler := handlers.NewScenarioHandler(scenarioStore, orchestrator)
	ratesHandler := handlers.NewRatesHandler(ratesService)
	healthHandler := handlers.NewHealthHandler()

	// Create Fiber app with optimized config
	app := fiber.New(fiber.Config{
		Prefork:       false, // Set to true in production for multi-process
		StrictRouting: true,
		CaseSensitive: true,
		ServerHeader:  "HFP-API",
		AppName:       "HFP v1.0",
		ReadTimeout:   time.Second * 10,
		WriteTimeout:  time.Second * 30,
		BodyLimit:     4 * 1024 * 1024, // 4MB
		ErrorHandler:  handlers.CustomErrorHandler,
	})

	// Middleware stack
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "https://*,http://localhost:*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	}))

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "HFP API",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)

	// API v1 routes
	v1 := app.Group("/v1")
	v1.Post("/projection", projectionHandler.GetProjection)
	v1.Post("/projection/report", projectionHandler.GetProjectionReport)

	v1.Post("/scenarios", scenarioHandler.CreateScenario)
	v1.Get("/scenarios", scenarioHandler.ListScenarios)
	v1.Get("/scenarios/:id", scenarioHandler.GetScenario)
	v1.Delete("/scenarios/:id", scenarioHandler.DeleteScenario)
	v1.Get("/scenarios/:id/projection", scenarioHandler.GetScenarioProjection)
	v1.Post("/scenarios/:id/entries", scenarioHandler.AddEntry)
	v1.Put("/scenarios/:id/entries/:entryId", scenarioHandler.UpdateEntry)
	v1.Delete("/scenarios/:id/entries/:entryId", scenarioHandler.RemoveEntry)

	v1.Get("/rates/:symbol", ratesHandler.GetRate)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("HFP API started on port %s", port)
	log.Printf("Environment: %s", cfg.Environment)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown complete")
}

// seedDefaultScenario makes sure a fresh deployment has one working scenario
// to project against. DEFAULT_SCENARIO_FILE overrides the embedded config.
func seedDefaultScenario(cfg *config.Config, store *services.ScenarioStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	projection, err := config.DefaultProjection()
	if cfg.ScenarioFile != "" {
		projection, err = config.LoadProjectionFile(cfg.ScenarioFile)
	}
	if err != nil {
		log.Printf("default scenario unavailable: %v", err)
		return
	}

	if _, err := store.Create(ctx, "Default", projection); err != nil {
		log.Printf("failed to seed default scenario: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resumesync/internal/config"
	"alfredoptarigan/resumesync/internal/handlers"
	"alfredoptarigan/resumesync/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	overrides, err := config.LoadPromptOverrides(cfg.Prompt.File)
	if err != nil {
		log.Fatalf("❌ Failed to load prompt file: %v", err)
	}

	// Initialize services
	var docxExtractor services.TextExtractor
	if cfg.Ingest.DocxText {
		docxExtractor = services.NewDocxTextExtractor()
	}
	ingestionService := services.NewIngestionService(services.NewPDFPageExtractor(), docxExtractor)

	completer, err := services.NewCompleter(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize completion client: %v", err)
	}

	analyzerService := services.NewAnalyzerService(
		completer,
		services.NewPromptBuilder(overrides),
		cfg.Workflow,
	)
	workspaceService := services.NewWorkspaceService()
	log.Println("✅ Services initialized successfully")

	// Start workspace janitor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	janitor := services.NewJanitor(workspaceService, cfg.Workspace.IdleTTL, cfg.Workspace.SweepInterval)
	janitor.Start(ctx)

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(ingestionService, workspaceService, cfg.Ingest.AdvisorySize)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzerService, workspaceService)
	pageHandler := handlers.NewPageHandler(workspaceService, cfg.AI.Provider)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ResumeSync",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    int(cfg.Server.MaxBodySize),
		Immutable:    true,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use("/api", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, uploadHandler, analyzeHandler, pageHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		janitor.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Open http://localhost%s in your browser\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"hrfirst/cv-parser/internal/config"
	"hrfirst/cv-parser/internal/handlers"
	"hrfirst/cv-parser/internal/logger"
	"hrfirst/cv-parser/internal/repositories"
	"hrfirst/cv-parser/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		zapLogger.Fatal("❌ Failed to initialize database", zap.Error(err))
	}
	zapLogger.Info("✅ Database connected successfully")

	// Initialize repositories
	cvRepo := repositories.NewCVRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	errRepo := repositories.NewErrorRepository(db)
	zapLogger.Info("✅ Repositories initialized successfully")

	// Initialize services
	ctx := context.Background()

	errSink := services.NewErrorSink(errRepo, zapLogger)

	blobService, err := services.NewBlobService(ctx, cfg.Storage)
	if err != nil {
		zapLogger.Fatal("❌ Failed to initialize blob storage", zap.Error(err))
	}
	zapLogger.Info("✅ Blob storage initialized successfully")

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		zapLogger.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
	}
	zapLogger.Info("✅ Gemini AI initialized successfully")

	extractorService := services.NewExtractorService(geminiService)
	textExtractor := services.NewTextExtractor()
	renderer := services.NewRenderer()

	processor := services.NewFileProcessor(
		blobService,
		textExtractor,
		extractorService,
		cvRepo,
		errSink,
		zapLogger,
	)
	zapLogger.Info("✅ Services initialized successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(processor, errSink, zapLogger)
	jobHandler := handlers.NewJobHandler(extractorService, jobRepo, errSink)
	exportHandler := handlers.NewExportHandler(jobRepo, renderer, errSink)
	zapLogger.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HR First API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Server.MaxBodySize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload-files-process/", uploadHandler.HandleUploadFiles)
	api.Post("/create-job-description/", jobHandler.HandleCreateJobDescription)
	api.Get("/get-job-description-pdf/:id", exportHandler.HandleExportPDF)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HR First API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/upload-files-process/",
				"POST /api/create-job-description/",
				"GET /api/get-job-description-pdf/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zapLogger.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zapLogger.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info(fmt.Sprintf("🚀 Server starting on %s", addr))

	if err := app.Listen(addr); err != nil {
		zapLogger.Fatal("❌ Failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

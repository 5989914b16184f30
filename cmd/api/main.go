package main

import (
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

	"alfredoptarigan/ats-engine/internal/config"
	"alfredoptarigan/ats-engine/internal/handlers"
	"alfredoptarigan/ats-engine/internal/repositories"
	"alfredoptarigan/ats-engine/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize repositories. Without a reachable database the engine
	// still runs, holding jobs and candidates in memory only.
	var jobRepo repositories.JobRepository
	var candRepo repositories.CandidateRepository

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Printf("⚠️  Database unavailable, using in-memory repositories: %v\n", err)
		jobRepo = repositories.NewMemoryJobRepository()
		candRepo = repositories.NewMemoryCandidateRepository()
	} else {
		jobRepo = repositories.NewJobRepository(db)
		candRepo = repositories.NewCandidateRepository(db)
	}

	resultCache := repositories.NewResultCache()
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	resumeParser := services.NewResumeParserService()
	matcher := services.NewSkillMatcher()
	scorer := services.NewScoreCalculator(cfg.Scoring)
	prompts := services.NewPromptBuilder()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize retrieval
	retriever := services.NewRetrievalService(
		geminiService,
		qdrantService,
		services.NewTextChunker(),
		cfg.Retrieval,
		cfg.Gemini.Timeout,
	)

	// Initialize evaluator
	evaluatorService := services.NewEvaluatorService(
		jobRepo,
		candRepo,
		resultCache,
		matcher,
		scorer,
		retriever,
		geminiService,
		prompts,
		cfg.Worker,
		cfg.Gemini.Timeout,
	)
	log.Println("✅ Evaluator service initialized")

	// Initialize comparison
	comparisonService := services.NewComparisonService(
		jobRepo,
		resultCache,
		evaluatorService,
		geminiService,
		prompts,
		cfg.Worker.RetryMaxAttempts,
		cfg.Gemini.Timeout,
	)
	log.Println("✅ Comparison service initialized")

	// Initialize Handlers
	jobHandler := handlers.NewJobHandler(jobRepo, candRepo, resultCache, retriever)
	resumeHandler := handlers.NewResumeHandler(
		jobRepo,
		candRepo,
		resultCache,
		resumeParser,
		pdfParser,
		storageService,
		retriever,
		cfg.Storage.MaxFileSize,
	)
	candidateHandler := handlers.NewCandidateHandler(jobRepo, candRepo, evaluatorService)
	evaluateHandler := handlers.NewEvaluateHandler(evaluatorService)
	compareHandler := handlers.NewCompareHandler(comparisonService)
	resultHandler := handlers.NewResultHandler(jobRepo, resultCache)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ATS Evaluation Engine API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Job endpoints
	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Get("/jobs/:job_id", jobHandler.HandleGetJob)
	api.Put("/jobs/:job_id", jobHandler.HandleUpdateJob)
	api.Delete("/jobs/:job_id", jobHandler.HandleDeleteJob)

	// Resume endpoints
	api.Post("/jobs/:job_id/resumes", resumeHandler.HandleAddResume)
	api.Post("/jobs/:job_id/resumes/bulk", resumeHandler.HandleBulkResumes)
	api.Post("/jobs/:job_id/resumes/upload", resumeHandler.HandleUploadResume)

	// Candidate endpoints
	api.Get("/jobs/:job_id/candidates", candidateHandler.HandleListCandidates)
	api.Get("/jobs/:job_id/candidates/:candidate_id", candidateHandler.HandleGetCandidate)

	// Evaluation endpoints
	api.Post("/evaluate", evaluateHandler.HandleEvaluate)
	api.Post("/jobs/:job_id/evaluate", evaluateHandler.HandleEvaluateJob)
	api.Post("/jobs/:job_id/candidates/:candidate_id/evaluate", evaluateHandler.HandleEvaluateCandidate)

	// Comparison endpoint
	api.Post("/compare", compareHandler.HandleCompare)

	// Result endpoints
	api.Get("/results/:job_id", resultHandler.HandleGetResults)
	api.Get("/results/:job_id/top", resultHandler.HandleGetTopResults)
	api.Get("/results/:job_id/summary", resultHandler.HandleGetSummary)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ATS Evaluation Engine API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jobs",
				"POST /api/v1/jobs/:job_id/resumes",
				"POST /api/v1/evaluate",
				"POST /api/v1/compare",
				"GET /api/v1/results/:job_id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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

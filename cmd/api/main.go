package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/router"
	"alfredoptarigan/resume-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Run metadata is stored only when a database is configured
	runRepo := repositories.NewNoopScreeningRunRepository()
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		runRepo = repositories.NewScreeningRunRepository(db)
	}
	log.Println("✅ Repositories initialized successfully")

	// Initialize model client
	llmService, err := services.NewLLMService(cfg.LLM)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s client: %v", cfg.LLM.Provider, err)
	}
	log.Printf("✅ %s client initialized (model %s)\n", cfg.LLM.Provider, cfg.ModelName())

	screenerService := services.NewScreenerService(
		runRepo,
		llmService,
		services.NewPDFParserService(),
		services.NewResponseInterpreter(cfg.LLM.StripCodeFences),
	)
	log.Println("✅ Screener service initialized")

	app := router.NewApp(cfg.BodyLimit(), true)
	router.Register(app, router.Handlers{
		Page:   handlers.NewPageHandler(screenerService, cfg.Storage.MaxFileSize),
		Screen: handlers.NewScreenHandler(screenerService, cfg.Storage.MaxFileSize),
		Run:    handlers.NewRunHandler(runRepo),
	})
	log.Println("✅ Handlers initialized")

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

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Screening page: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/thingylabs/invoice-api/internal/application/service"
	"github.com/thingylabs/invoice-api/internal/config"
	"github.com/thingylabs/invoice-api/internal/infrastructure/database"
	"github.com/thingylabs/invoice-api/internal/infrastructure/repository"
	"github.com/thingylabs/invoice-api/internal/presentation/http/handler"
	"github.com/thingylabs/invoice-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)

	// Initialize services
	clientService := service.NewClientService(clientRepo)
	companyService := service.NewCompanyService(companyRepo, cfg.Invoice.DefaultPaymentTerms)
	invoiceService := service.NewInvoiceService(draftRepo, companyRepo, sequenceRepo, cfg.Invoice.LenientExport)

	// Initialize handlers
	handlers := &routes.Handlers{
		Client:  handler.NewClientHandler(clientService),
		Company: handler.NewCompanyHandler(companyService),
		Invoice: handler.NewInvoiceHandler(invoiceService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

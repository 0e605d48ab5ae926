package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/umamiasd/umami-api/internal/application/service"
	"github.com/umamiasd/umami-api/internal/config"
	"github.com/umamiasd/umami-api/internal/infrastructure/database"
	"github.com/umamiasd/umami-api/internal/infrastructure/repository"
	"github.com/umamiasd/umami-api/internal/presentation/http/handler"
	"github.com/umamiasd/umami-api/internal/presentation/http/routes"
	"github.com/umamiasd/umami-api/pkg/email"
	"github.com/umamiasd/umami-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	fivRepo := repository.NewFIVMembershipRepository(db)
	accessKeyRepo := repository.NewAccessKeyRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	assetPriceRepo := repository.NewAssetPriceRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	memberService := service.NewMemberService(memberRepo, fivRepo, accessKeyRepo)
	supplierService := service.NewSupplierService(supplierRepo, invoiceRepo)
	assetService := service.NewAssetService(assetRepo, assetPriceRepo)
	catalogService := service.NewCatalogService(serviceRepo)
	billingService := service.NewBillingService(billingRepo, memberRepo, assetRepo, assetPriceRepo, serviceRepo, assignmentRepo, deliveryRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, memberRepo, supplierRepo)
	paymentService := service.NewPaymentService(paymentRepo, invoiceRepo)
	reportService := service.NewReportService(reportRepo, emailService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Member:   handler.NewMemberHandler(memberService),
		Supplier: handler.NewSupplierHandler(supplierService),
		Asset:    handler.NewAssetHandler(assetService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Billing:  handler.NewBillingHandler(billingService),
		Invoice:  handler.NewInvoiceHandler(invoiceService, paymentService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Report:   handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

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

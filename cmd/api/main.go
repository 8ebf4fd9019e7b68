package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/decoraworks/atelier-api/internal/application/service"
	"github.com/decoraworks/atelier-api/internal/config"
	"github.com/decoraworks/atelier-api/internal/infrastructure/database"
	"github.com/decoraworks/atelier-api/internal/infrastructure/repository"
	"github.com/decoraworks/atelier-api/internal/presentation/http/handler"
	"github.com/decoraworks/atelier-api/internal/presentation/http/routes"
	"github.com/decoraworks/atelier-api/pkg/email"
	"github.com/decoraworks/atelier-api/pkg/oauth"
	"github.com/decoraworks/atelier-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
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
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	contactRepo := repository.NewContactRepository(db)
	conversionRepo := repository.NewLeadConversionRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	preBudgetRepo := repository.NewPreBudgetRepository(db)
	preBudgetItemRepo := repository.NewPreBudgetItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceItemRepo := repository.NewInvoiceItemRepository(db)
	productSaleRepo := repository.NewProductSaleRepository(db)
	visitRepo := repository.NewSiteVisitRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	tenantService := service.NewTenantService(tenantRepo)
	leadService := service.NewLeadService(leadRepo, conversionRepo)
	contactService := service.NewContactService(contactRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	preBudgetService := service.NewPreBudgetService(preBudgetRepo, preBudgetItemRepo, leadRepo, contactRepo, tenantRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, invoiceItemRepo, productSaleRepo, productRepo, contactRepo, tenantRepo)
	visitService := service.NewSiteVisitService(visitRepo, leadRepo, contactRepo)
	dashboardService := service.NewDashboardService(leadRepo, conversionRepo, contactRepo, invoiceRepo, productRepo, visitRepo)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Tenant:    handler.NewTenantHandler(tenantService),
		Lead:      handler.NewLeadHandler(leadService),
		Contact:   handler.NewContactHandler(contactService),
		Product:   handler.NewProductHandler(productService),
		Category:  handler.NewCategoryHandler(categoryService),
		PreBudget: handler.NewPreBudgetHandler(preBudgetService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		SiteVisit: handler.NewSiteVisitHandler(visitService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		User:      handler.NewUserHandler(userService),
	}

	// Sweep expired idempotency keys and reset tokens in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx := context.Background()
			if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
				log.Printf("Warning: Failed to sweep idempotency keys: %v", err)
			}
			if err := passwordResetRepo.DeleteExpired(ctx); err != nil {
				log.Printf("Warning: Failed to sweep password reset tokens: %v", err)
			}
		}
	}()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
	})

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

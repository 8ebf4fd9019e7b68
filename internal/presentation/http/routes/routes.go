package routes

import (
	"time"

	"github.com/decoraworks/atelier-api/internal/config"
	domainRepo "github.com/decoraworks/atelier-api/internal/domain/repository"
	"github.com/decoraworks/atelier-api/internal/presentation/http/handler"
	"github.com/decoraworks/atelier-api/internal/presentation/http/middleware"
	"github.com/decoraworks/atelier-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Tenant    *handler.TenantHandler
	Lead      *handler.LeadHandler
	Contact   *handler.ContactHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	PreBudget *handler.PreBudgetHandler
	Invoice   *handler.InvoiceHandler
	SiteVisit *handler.SiteVisitHandler
	Dashboard *handler.DashboardHandler
	User      *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication + tenant context required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission("view-dashboard"))
	{
		dashboard.GET("", h.Dashboard.GetStats)
	}

	// Tenants
	registerTenantRoutes(protected, h)

	// Leads
	registerLeadRoutes(protected, h)

	// Contacts
	registerContactRoutes(protected, h)

	// Products
	registerProductRoutes(protected, h)

	// Categories
	registerCategoryRoutes(protected, h)

	// Pre-budgets
	registerPreBudgetRoutes(protected, h)

	// Invoices and sales
	registerInvoiceRoutes(protected, h, deps)

	// Site visits
	registerSiteVisitRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Roles (Admin)
	registerRoleRoutes(protected, h)

	// Permissions (Admin)
	registerPermissionRoutes(protected, h)

	// Super Admin routes
	registerAdminRoutes(protected, h)
}

func registerTenantRoutes(protected *gin.RouterGroup, h *Handlers) {
	tenants := protected.Group("/tenants")
	{
		tenants.GET("", h.Tenant.ListTenants)
		tenants.POST("", h.Tenant.Create)
		tenants.GET("/current", h.Tenant.GetCurrentTenant)
		tenants.PUT("/current", h.Tenant.UpdateTenant)
		tenants.GET("/current/members", h.Tenant.ListMembers)
		tenants.POST("/current/members", h.Tenant.InviteMember)
		tenants.PUT("/current/members/:user_id", h.Tenant.UpdateMemberRole)
		tenants.DELETE("/current/members/:user_id", h.Tenant.RemoveMember)
	}
}

func registerLeadRoutes(protected *gin.RouterGroup, h *Handlers) {
	leads := protected.Group("/leads")
	leads.Use(middleware.RequirePermission("manage-leads"))
	{
		leads.GET("", h.Lead.List)
		leads.POST("", h.Lead.Create)
		leads.GET("/:id", h.Lead.Get)
		leads.PUT("/:id", h.Lead.Update)
		leads.DELETE("/:id", h.Lead.Delete)
		leads.GET("/:id/conversion", h.Lead.GetConversion)
	}

	conversions := protected.Group("/conversions")
	conversions.Use(middleware.RequirePermission("manage-leads"))
	{
		conversions.GET("", h.Lead.ListConversions)
	}
}

func registerContactRoutes(protected *gin.RouterGroup, h *Handlers) {
	contacts := protected.Group("/contacts")
	contacts.Use(middleware.RequirePermission("manage-contacts"))
	{
		contacts.GET("", h.Contact.List)
		contacts.POST("", h.Contact.Create)
		contacts.GET("/:id", h.Contact.Get)
		contacts.PUT("/:id", h.Contact.Update)
		contacts.DELETE("/:id", h.Contact.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	products.Use(middleware.RequirePermission("manage-products"))
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:slug", h.Product.Get)
		products.PUT("/:slug", h.Product.Update)
		products.DELETE("/:slug", h.Product.Delete)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	categories.Use(middleware.RequirePermission("manage-products"))
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}
}

func registerPreBudgetRoutes(protected *gin.RouterGroup, h *Handlers) {
	preBudgets := protected.Group("/pre-budgets")
	preBudgets.Use(middleware.RequirePermission("manage-prebudgets"))
	{
		preBudgets.GET("", h.PreBudget.List)
		preBudgets.POST("", h.PreBudget.Create)
		preBudgets.GET("/:id", h.PreBudget.Get)
		preBudgets.PUT("/:id", h.PreBudget.Update)
		preBudgets.DELETE("/:id", h.PreBudget.Delete)
		preBudgets.POST("/:id/send", h.PreBudget.Send)
		preBudgets.POST("/:id/approve", h.PreBudget.Approve)
		preBudgets.POST("/:id/reject", h.PreBudget.Reject)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := protected.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation uses idempotency middleware to prevent duplicates
		invoices.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/payments", h.Invoice.RecordPayment)
		invoices.POST("/:id/cancel", h.Invoice.Cancel)
	}

	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission("view-reports"))
	{
		sales.GET("", h.Invoice.ListSales)
	}
}

func registerSiteVisitRoutes(protected *gin.RouterGroup, h *Handlers) {
	visits := protected.Group("/site-visits")
	visits.Use(middleware.RequirePermission("manage-visits"))
	{
		visits.GET("", h.SiteVisit.List)
		visits.POST("", h.SiteVisit.Create)
		visits.GET("/upcoming", h.SiteVisit.Upcoming)
		visits.GET("/:id", h.SiteVisit.Get)
		visits.PUT("/:id", h.SiteVisit.Reschedule)
		visits.POST("/:id/complete", h.SiteVisit.Complete)
		visits.POST("/:id/cancel", h.SiteVisit.Cancel)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerRoleRoutes(protected *gin.RouterGroup, h *Handlers) {
	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}

func registerPermissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole("super-admin"))
	{
		admin.GET("/tenants", h.Tenant.ListAllTenants)
		admin.POST("/tenants/assign-user", h.Tenant.AssignUserToTenant)
	}
}

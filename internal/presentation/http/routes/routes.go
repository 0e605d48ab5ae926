package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/umamiasd/umami-api/internal/config"
	domainRepo "github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/internal/presentation/http/handler"
	"github.com/umamiasd/umami-api/internal/presentation/http/middleware"
	"github.com/umamiasd/umami-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Member   *handler.MemberHandler
	Supplier *handler.SupplierHandler
	Asset    *handler.AssetHandler
	Catalog  *handler.CatalogHandler
	Billing  *handler.BillingHandler
	Invoice  *handler.InvoiceHandler
	Payment  *handler.PaymentHandler
	Report   *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
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
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
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

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Members
	members := protected.Group("/associati")
	{
		members.POST("", h.Member.Create)
		members.GET("", h.Member.List)
		members.GET("/:id", h.Member.Get)
		members.PATCH("/:id", h.Member.Update)
		members.PUT("/:id/tessera-fiv", h.Member.UpsertFIVCard)
		members.PUT("/:id/chiave", h.Member.UpsertAccessKey)
		members.POST("/:id/chiave/ricarica", h.Member.RechargeCredit)
		members.GET("/:id/assegnazioni", h.Billing.ListMemberAssignments)
		members.GET("/:id/erogazioni", h.Billing.ListMemberDeliveries)
	}

	// Suppliers
	suppliers := protected.Group("/fornitori")
	{
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PATCH("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}

	// Physical assets
	assets := protected.Group("/servizi-fisici")
	{
		assets.POST("", h.Asset.Create)
		assets.GET("", h.Asset.List)
		assets.GET("/:id", h.Asset.Get)
		assets.PATCH("/:id", h.Asset.Update)
		assets.PUT("/:id/prezzo", h.Asset.SetPrice)
	}

	// Service catalog
	services := protected.Group("/prestazioni")
	{
		services.POST("", h.Catalog.Create)
		services.GET("", h.Catalog.List)
		services.GET("/:id", h.Catalog.Get)
		services.PATCH("/:id", h.Catalog.Update)
	}

	// Billing workflows; idempotency keys let clients retry a POST
	// without issuing a duplicate invoice
	idem := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})
	billing := protected.Group("")
	billing.Use(idem)
	{
		billing.POST("/assegnazioni", h.Billing.AssignAsset)
		billing.POST("/erogazioni", h.Billing.DeliverService)
		billing.POST("/pagamenti", h.Payment.Record)
	}
	protected.POST("/assegnazioni/:id/termina", h.Billing.TerminateAssignment)

	// Invoices
	invoices := protected.Group("/fatture")
	{
		invoices.POST("", h.Invoice.Create)
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/annulla", h.Invoice.Cancel)
		invoices.GET("/:id/pagamenti", h.Invoice.ListPayments)
	}

	// Reports
	reports := protected.Group("/report")
	{
		reports.GET("/soci-morosi", h.Report.DelinquentMembers)
		reports.GET("/tesserati-fiv", h.Report.FIVMembers)
		reports.GET("/certificati-in-scadenza", h.Report.ExpiringCertificates)
		reports.POST("/soci-morosi/solleciti", h.Report.SendReminders)
	}
}

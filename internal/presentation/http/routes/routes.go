package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thingylabs/invoice-api/internal/config"
	"github.com/thingylabs/invoice-api/internal/presentation/http/handler"
	"github.com/thingylabs/invoice-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Client  *handler.ClientHandler
	Company *handler.CompanyHandler
	Invoice *handler.InvoiceHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
			BurstSize:         cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerClientRoutes(v1, h)
		registerCompanyRoutes(v1, h)
		registerDraftRoutes(v1, h)
		registerInvoiceRoutes(v1, h)
	}

	return router
}

func registerClientRoutes(v1 *gin.RouterGroup, h *Handlers) {
	clients := v1.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerCompanyRoutes(v1 *gin.RouterGroup, h *Handlers) {
	company := v1.Group("/company")
	{
		company.GET("", h.Company.Get)
		company.PUT("", h.Company.Put)
	}
}

func registerDraftRoutes(v1 *gin.RouterGroup, h *Handlers) {
	draft := v1.Group("/draft")
	{
		draft.GET("", h.Invoice.GetDraft)
		draft.PUT("", h.Invoice.PutDraft)
		draft.DELETE("", h.Invoice.DeleteDraft)
	}
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	invoices := v1.Group("/invoices")
	{
		invoices.POST("/number", h.Invoice.NextNumber)
		invoices.POST("/validate", h.Invoice.Validate)
		invoices.POST("/preview", h.Invoice.Preview)
		invoices.POST("/xrechnung", h.Invoice.ExportXRechnung)
		invoices.POST("/zugferd", h.Invoice.ExportZUGFeRD)
		invoices.POST("/pdf", h.Invoice.ExportPDF)
	}
}

package router

import (
	"github.com/gin-gonic/gin"

	"enertika/internal/config"
	"enertika/internal/handler"
	"enertika/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	healthH *handler.HealthHandler,
	voucherH *handler.VoucherHandler,
	invoiceH *handler.InvoiceHandler,
	catalogH *handler.CatalogHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	purchases := r.Group("/api/v1/purchases")
	purchases.Use(middleware.Actor())

	// Vouchers
	vouchers := purchases.Group("/vouchers")
	vouchers.POST("/upload", voucherH.Upload)
	vouchers.GET("", voucherH.List)
	vouchers.GET("/pending", voucherH.Pending)
	vouchers.GET("/search", voucherH.Search)
	vouchers.GET("/stats", voucherH.Stats)
	vouchers.GET("/export", voucherH.Export)
	vouchers.PATCH("/bulk", voucherH.BulkUpdate)
	vouchers.GET("/:id", voucherH.GetByID)
	vouchers.PATCH("/:id", voucherH.Update)
	vouchers.GET("/:id/attachments", voucherH.Attachments)

	// Invoices
	invoices := purchases.Group("/invoices")
	invoices.POST("/upload", invoiceH.Upload)
	invoices.POST("/:uuid/confirm", invoiceH.Confirm)

	// Catalogs and suppliers
	purchases.GET("/catalogs", voucherH.Catalogs)
	purchases.PATCH("/catalogs/:kind/:id/active", catalogH.SetActive)
	purchases.GET("/suppliers", voucherH.Suppliers)

	return r
}

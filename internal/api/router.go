package api

import (
	"github.com/gin-gonic/gin"

	"primero/rentdesk/internal/api/handlers"
	"primero/rentdesk/internal/api/middleware"
	"primero/rentdesk/internal/config"
	"primero/rentdesk/internal/services"
)

// Services groups everything the router needs to wire up handlers.
type Services struct {
	User     services.IUserService
	Property services.IPropertyService
	Tenant   services.ITenantService
	Contract services.IContractService
	Payment  services.IPaymentService
	Billing  services.IBillingService
	Report   services.IReportService
}

// SetupRouter configures the Gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, svcs Services) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	router.Use(rateLimiter.Limit())

	authHandler := handlers.NewAuthHandler(svcs.User, cfg)
	propertyHandler := handlers.NewPropertyHandler(svcs.Property)
	tenantHandler := handlers.NewTenantHandler(svcs.Tenant)
	contractHandler := handlers.NewContractHandler(svcs.Contract)
	paymentHandler := handlers.NewPaymentHandler(svcs.Payment)
	billingHandler := handlers.NewBillingHandler(svcs.Billing)
	reportHandler := handlers.NewReportHandler(svcs.Report)

	v1 := router.Group("/v1")

	// Public routes
	v1.POST("/auth/login", authHandler.Login)

	// Everything else requires a valid admin session.
	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(cfg.JwtSecret))
	{
		authed.POST("/auth/password", authHandler.ChangePassword)

		authed.POST("/properties", propertyHandler.Create)
		authed.GET("/properties", propertyHandler.List)
		authed.GET("/properties/:id", propertyHandler.Get)
		authed.PUT("/properties/:id", propertyHandler.Update)
		authed.DELETE("/properties/:id", propertyHandler.Delete)

		authed.POST("/tenants", tenantHandler.Create)
		authed.GET("/tenants", tenantHandler.List)
		authed.GET("/tenants/:id", tenantHandler.Get)
		authed.GET("/tenants/:id/details", tenantHandler.Details)
		authed.PUT("/tenants/:id", tenantHandler.Update)
		authed.DELETE("/tenants/:id", tenantHandler.Delete)
		authed.GET("/tenants/:id/unbilled-months", billingHandler.UnbilledMonths)
		authed.GET("/tenants/:id/unpaid-bills", paymentHandler.ListUnpaidByTenant)

		authed.POST("/contracts", contractHandler.Create)
		authed.GET("/contracts", contractHandler.List)
		authed.GET("/contracts/:id", contractHandler.Get)
		authed.PUT("/contracts/:id", contractHandler.Update)
		authed.DELETE("/contracts/:id", contractHandler.Delete)

		authed.GET("/payments", paymentHandler.List)
		authed.GET("/payments/:id", paymentHandler.Get)
		authed.POST("/payments/:id/record", paymentHandler.Record)
		authed.POST("/payments/:id/revert", paymentHandler.Revert)
		authed.DELETE("/payments/:id", paymentHandler.Delete)

		authed.POST("/bills", billingHandler.CreateBill)

		authed.GET("/reports/dashboard", reportHandler.DashboardStats)
		authed.GET("/reports/monthly-revenue", reportHandler.MonthlyRevenue)
		authed.GET("/reports/payment-status", reportHandler.PaymentStatusBreakdown)
		authed.GET("/reports/occupancy", reportHandler.OccupancyBreakdown)
	}

	return router
}

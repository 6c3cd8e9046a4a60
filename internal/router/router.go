package router

import (
	"time"

	"github.com/ServEase-Innovations/payments/config"
	"github.com/ServEase-Innovations/payments/internal/handler"
	"github.com/ServEase-Innovations/payments/internal/middleware"
	"github.com/ServEase-Innovations/payments/internal/repository"
	"github.com/ServEase-Innovations/payments/internal/service"
	"github.com/ServEase-Innovations/payments/internal/ws"
	"github.com/ServEase-Innovations/payments/pkg/gateway"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, gw gateway.Client, hub *ws.Hub) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	engagementRepo := repository.NewEngagementRepository(db)
	modificationRepo := repository.NewModificationRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	providerWalletRepo := repository.NewProviderWalletRepository(db)

	// Services
	ledgerSvc := service.NewLedgerService(db, gw, cfg.Server.Env)
	discoverySvc := service.NewDiscoveryService(providerRepo, cfg.Discovery.RadiusKm)
	bookingSvc := service.NewBookingService(db, gw, cfg.Gateway.Currency, ws.NewNotifier(hub), ledgerSvc, discoverySvc)
	leaveSvc := service.NewLeaveService(db, ledgerSvc)

	// Handlers
	engagementHandler := handler.NewEngagementHandler(bookingSvc, leaveSvc)
	customerHandler := handler.NewCustomerHandler(engagementRepo, modificationRepo, leaveSvc)
	walletHandler := handler.NewWalletHandler(ledgerSvc)
	paymentHandler := handler.NewPaymentHandler(ledgerSvc)
	providerHandler := handler.NewProviderHandler(providerRepo, payoutRepo, providerWalletRepo, engagementRepo)

	api := r.Group("/api/v1")
	{
		engagements := api.Group("/engagements")
		{
			engagements.POST("", engagementHandler.Create)
			engagements.GET("", engagementHandler.List)
			engagements.GET("/:id", engagementHandler.Get)
			engagements.PUT("/:id", engagementHandler.Update)
			engagements.PATCH("/:id/cancel", engagementHandler.Cancel)
			engagements.DELETE("/:id", engagementHandler.Delete)
			engagements.POST("/:id/accept", engagementHandler.Accept)
			engagements.PATCH("/:id/accept", engagementHandler.Accept)
		}

		api.GET("/customers/:id/engagements", customerHandler.ListEngagements)
		api.POST("/customers/:id/leaves", customerHandler.ApplyLeave)

		api.GET("/wallets/:customerId", walletHandler.Get)
		api.POST("/payments/verify", paymentHandler.Verify)

		api.GET("/providers/:id/payouts", providerHandler.Payouts)
		api.GET("/providers/:id/payment-history", providerHandler.PaymentHistory)
		api.GET("/providers/:id/engagements", providerHandler.Engagements)
	}

	r.GET("/ws/providers", ws.UpgradeProviderWS(hub))

	return r
}

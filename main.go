// File: homely/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homely/config"
	"homely/cron"
	"homely/database"
	addressRepo "homely/database/repository/address"
	appointmentRepo "homely/database/repository/appointment"
	catalogRepo "homely/database/repository/catalog"
	"homely/handlers"
	"homely/middleware"
	"homely/routes"
	"homely/services/availability"
	"homely/services/checkout"
	"homely/services/offers"
	"homely/services/payment"
	"homely/services/tasks"
	"homely/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	addrRepo := addressRepo.NewMongoAddressRepo()
	svcCatalog := catalogRepo.NewMongoCatalogRepo()

	// services.
	rulesClient := offers.NewHTTPRulesClient(config.AppConfig.OfferRulesURL, logger)
	gateway := payment.NewStripeGateway(logger)
	reconciler := tasks.NewScheduler()

	dispatcher := &checkout.PaymentDispatcher{
		Appointments: apptRepo,
		Gateway:      gateway,
		Reconciler:   reconciler,
		Logger:       logger,
	}

	checkoutService := &checkout.DefaultCheckoutService{
		Cache: utils.GetCheckoutCacheClient(),
		Guard: checkout.NewContinuityGuard(
			utils.GetSnapshotCacheClient(),
			7*24*time.Hour,
			logger,
		),
		Catalog:    svcCatalog,
		Rules:      rulesClient,
		Dispatcher: dispatcher,
		Logger:     logger,
	}

	slotService := availability.NewDefaultSlotService()

	// Background worker for pending-appointment reconciliation.
	cron.InitReconcileWorker(apptRepo)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Checkout:     handlers.NewCheckoutHandler(checkoutService),
		Catalog:      handlers.NewCatalogHandler(svcCatalog),
		Address:      handlers.NewAddressHandler(addrRepo),
		Availability: handlers.NewAvailabilityHandler(slotService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

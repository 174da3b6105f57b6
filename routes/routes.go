package routes

import (
	"net/http"
	"time"

	"homely/handlers"
	"homely/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates all route handlers.
type HandlerBundle struct {
	Checkout     *handlers.CheckoutHandler
	Catalog      *handlers.CatalogHandler
	Address      *handlers.AddressHandler
	Availability *handlers.AvailabilityHandler
}

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterCheckoutRoutes(r, hb.Checkout)
	RegisterCatalogRoutes(r, hb.Catalog, hb.Availability)
	RegisterAddressRoutes(r, hb.Address)
}

// RegisterCatalogRoutes registers the read-only catalog and availability endpoints.
func RegisterCatalogRoutes(r *gin.Engine, h *handlers.CatalogHandler, a *handlers.AvailabilityHandler) {
	api := r.Group("/api/services")
	{
		api.GET("/category/:category", h.ListByCategory)
		api.GET("/id/:serviceID", h.GetService)
		api.GET("/slots", a.ListSlots)
	}
}

// RegisterAddressRoutes registers saved-address endpoints.
func RegisterAddressRoutes(r *gin.Engine, h *handlers.AddressHandler) {
	api := r.Group("/api/addresses")
	{
		// Address book requires authentication.
		api.Use(middleware.RequireUserAuth())
		api.GET("", h.ListAddresses)
		api.POST("", h.CreateAddress)
	}
}

package routes

import (
	"homely/handlers"
	"homely/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterCheckoutRoutes registers all endpoints for the checkout engine.
func RegisterCheckoutRoutes(r *gin.Engine, h *handlers.CheckoutHandler) {
	co := r.Group("/api/checkout")
	co.Use(middleware.OptionalUserAuth())
	{
		co.POST("/session", h.StartSession)
		co.GET("/session/:sessionID", h.GetSession)
		co.DELETE("/session/:sessionID", h.AbandonSession)

		co.POST("/session/:sessionID/items", h.AddItem)
		co.DELETE("/session/:sessionID/items/:serviceID", h.RemoveItem)

		co.POST("/session/:sessionID/offer", h.ApplyOffer)
		co.DELETE("/session/:sessionID/offer", h.RevokeOffer)

		co.PUT("/session/:sessionID/address", h.SetAddress)
		co.PUT("/session/:sessionID/schedule", h.SetSchedule)
		co.PUT("/session/:sessionID/payment-method", h.SetPaymentMethod)
		co.GET("/payment-methods", h.ListPaymentMethods)

		co.POST("/session/:sessionID/next", h.Next)
		co.POST("/session/:sessionID/prev", h.Prev)
		co.POST("/session/:sessionID/goto", h.GoTo)

		co.GET("/session/:sessionID/quote", h.Quote)
		co.POST("/session/:sessionID/submit", h.Submit)
	}
}

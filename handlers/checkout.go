package handlers

import (
	"errors"
	"net/http"

	"homely/models"
	"homely/services/checkout"
	"homely/services/offers"
	"homely/utils"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler exposes the checkout wizard over HTTP.
type CheckoutHandler struct {
	Service checkout.CheckoutService
}

// NewCheckoutHandler creates a CheckoutHandler.
func NewCheckoutHandler(svc checkout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Service: svc}
}

func authContext(c *gin.Context) (bool, string) {
	authed := c.GetBool("isAuthenticated")
	userID := c.GetString("userID")
	return authed, userID
}

// respondCheckoutError maps typed checkout errors onto HTTP responses.
func respondCheckoutError(c *gin.Context, err error) {
	var validationErr *checkout.ValidationError
	var offerErr *offers.OfferError
	var gatewayErr *checkout.PaymentGatewayError
	var submissionErr *checkout.SubmissionError

	switch {
	case errors.Is(err, checkout.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
	case errors.Is(err, checkout.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"authRequired": true, "error": err.Error()})
	case errors.Is(err, checkout.ErrSessionLocked),
		errors.Is(err, checkout.ErrSubmissionInProgress),
		errors.Is(err, checkout.ErrAlreadySubmitted):
		utils.JSONError(c, http.StatusConflict, "checkout conflict", err.Error())
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "validation failed", validationErr.Message)
	case errors.As(err, &offerErr):
		status := http.StatusBadRequest
		if offerErr.Reason == offers.ReasonNetwork {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": offerErr.Message, "reason": string(offerErr.Reason)})
	case errors.As(err, &gatewayErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":          gatewayErr.Message,
			"appointment_id": gatewayErr.AppointmentID,
		})
	case errors.As(err, &submissionErr):
		utils.JSONError(c, http.StatusBadGateway, "booking submission failed", submissionErr.Message)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "checkout error", err.Error())
	}
}

// StartSession creates a new checkout session.
func (h *CheckoutHandler) StartSession(c *gin.Context) {
	_, userID := authContext(c)
	session, err := h.Service.StartSession(c.Request.Context(), userID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetSession loads (or restores) the session for the given id.
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	_, userID := authContext(c)
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"), userID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// AbandonSession explicitly abandons the checkout and clears its state.
func (h *CheckoutHandler) AbandonSession(c *gin.Context) {
	if err := h.Service.AbandonSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"abandoned": true})
}

// AddItem adds one unit of a service to the cart.
func (h *CheckoutHandler) AddItem(c *gin.Context) {
	var input struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.AddItem(c.Request.Context(), c.Param("sessionID"), input.ServiceID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// RemoveItem removes one unit, or the whole line with ?all=true.
func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	sessionID := c.Param("sessionID")
	serviceID := c.Param("serviceID")

	var session *models.CheckoutSession
	var err error
	if c.Query("all") == "true" {
		session, err = h.Service.RemoveItem(c.Request.Context(), sessionID, serviceID)
	} else {
		session, err = h.Service.RemoveOneUnit(c.Request.Context(), sessionID, serviceID)
	}
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ApplyOffer validates and applies a discount code.
func (h *CheckoutHandler) ApplyOffer(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.ApplyOffer(c.Request.Context(), c.Param("sessionID"), input.Code)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// RevokeOffer removes any applied discount code.
func (h *CheckoutHandler) RevokeOffer(c *gin.Context) {
	session, err := h.Service.RevokeOffer(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetAddress records the chosen service address.
func (h *CheckoutHandler) SetAddress(c *gin.Context) {
	var input struct {
		Address models.Address `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.SetAddress(c.Request.Context(), c.Param("sessionID"), input.Address)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetSchedule records the chosen date, time and slot extra fee.
func (h *CheckoutHandler) SetSchedule(c *gin.Context) {
	var input struct {
		Date     string  `json:"date"`
		Time     string  `json:"time"`
		ExtraFee float64 `json:"extraFee"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.SetSchedule(c.Request.Context(), c.Param("sessionID"), input.Date, input.Time, input.ExtraFee)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetPaymentMethod records the chosen payment method.
func (h *CheckoutHandler) SetPaymentMethod(c *gin.Context) {
	var input struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.SetPaymentMethod(c.Request.Context(), c.Param("sessionID"), input.Method)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ListPaymentMethods returns the configured method registry.
func (h *CheckoutHandler) ListPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": checkout.PaymentMethods()})
}

// Next advances the wizard one step.
func (h *CheckoutHandler) Next(c *gin.Context) {
	authed, userID := authContext(c)
	session, err := h.Service.Next(c.Request.Context(), c.Param("sessionID"), authed, userID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Prev moves the wizard one step back; from step one it exits checkout.
func (h *CheckoutHandler) Prev(c *gin.Context) {
	session, exited, err := h.Service.Prev(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "exited": exited})
}

// GoTo jumps to a visited step.
func (h *CheckoutHandler) GoTo(c *gin.Context) {
	var input struct {
		Step int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.GoTo(c.Request.Context(), c.Param("sessionID"), models.CheckoutStep(input.Step))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Quote returns the current payable breakdown.
func (h *CheckoutHandler) Quote(c *gin.Context) {
	quote, err := h.Service.Quote(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// Submit finalizes the booking.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var input struct {
		Notes string `json:"notes"`
	}
	// Notes are optional; an empty body is fine.
	_ = c.ShouldBindJSON(&input)

	outcome, err := h.Service.Submit(c.Request.Context(), c.Param("sessionID"), input.Notes)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": outcome})
}

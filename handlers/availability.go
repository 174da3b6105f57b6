package handlers

import (
	"net/http"
	"strconv"

	"homely/services/availability"
	"homely/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves selectable date/time slots.
type AvailabilityHandler struct {
	Slots availability.SlotService
}

// NewAvailabilityHandler creates an AvailabilityHandler.
func NewAvailabilityHandler(slots availability.SlotService) *AvailabilityHandler {
	return &AvailabilityHandler{Slots: slots}
}

// ListSlots returns bookable slots for the coming days.
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	slots, err := h.Slots.AvailableSlots(c.Request.Context(), days)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

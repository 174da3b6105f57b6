package handlers

import (
	"net/http"

	addressRepo "homely/database/repository/address"
	"homely/models"
	"homely/utils"

	"github.com/gin-gonic/gin"
)

// AddressHandler serves a user's saved service addresses.
type AddressHandler struct {
	Repo addressRepo.AddressRepository
}

// NewAddressHandler creates an AddressHandler.
func NewAddressHandler(repo addressRepo.AddressRepository) *AddressHandler {
	return &AddressHandler{Repo: repo}
}

// ListAddresses returns the authenticated user's saved addresses.
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	userID := c.GetString("userID")
	addrs, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load addresses", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addrs})
}

// CreateAddress persists a newly entered address for the authenticated user.
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.UserID = c.GetString("userID")

	addr, err := h.Repo.Create(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save address", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": addr})
}

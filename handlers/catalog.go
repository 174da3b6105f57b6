package handlers

import (
	"net/http"

	catalogRepo "homely/database/repository/catalog"
	"homely/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the priced service line items the cart is built from.
type CatalogHandler struct {
	Repo catalogRepo.CatalogRepository
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(repo catalogRepo.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{Repo: repo}
}

// ListByCategory returns active services in a category.
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	items, err := h.Repo.ListByCategory(c.Request.Context(), category)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": items})
}

// GetService returns a single catalog entry.
func (h *CatalogHandler) GetService(c *gin.Context) {
	item, err := h.Repo.GetByServiceID(c.Request.Context(), c.Param("serviceID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "service not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": item})
}

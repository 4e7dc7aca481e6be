package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"enertika/internal/domain"
	"enertika/internal/service"
)

// CatalogHandler handles opportunity catalog maintenance.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// SetActive handles PATCH /api/v1/purchases/catalogs/:kind/:id/active
// @Summary Activate or deactivate a catalog entry
// @Description Inactive entries are excluded from the opportunity import lookups
// @Tags catalogs
// @Accept json
// @Produce json
// @Param kind path string true "technologies, request_types, statuses or close_reasons"
// @Param id path int true "Catalog entry ID"
// @Param request body SetActiveRequest true "New state"
// @Success 200 {object} Response "Entry updated"
// @Failure 400 {object} ErrorResponseBody "Unknown catalog or invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Catalog entry not found"
// @Router /purchases/catalogs/{kind}/{id}/active [patch]
func (h *CatalogHandler) SetActive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid catalog entry ID")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "active is required")
		return
	}

	kind := domain.CatalogKind(c.Param("kind"))
	if err := h.catalogService.SetActive(c.Request.Context(), kind, id, *req.Active); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"kind": kind, "id": id, "active": *req.Active})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petledger/internal/domain"
	"petledger/internal/service"
)

// TaxSettingsHandler handles per-item tax configuration endpoints.
type TaxSettingsHandler struct {
	taxSettingsService service.TaxSettingsService
}

// NewTaxSettingsHandler creates a new TaxSettingsHandler.
func NewTaxSettingsHandler(taxSettingsService service.TaxSettingsService) *TaxSettingsHandler {
	return &TaxSettingsHandler{taxSettingsService: taxSettingsService}
}

// Update handles PUT /api/v1/items/tax-settings.
func (h *TaxSettingsHandler) Update(c *gin.Context) {
	var req TaxSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", bindingMessage(err))
		return
	}
	cfg, err := req.GSTSettings.ToDomain()
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.taxSettingsService.Update(c.Request.Context(), domain.TaxSettingsUpdate{
		ItemIDs:     req.ItemIDs,
		GSTSettings: cfg,
		BulkUpdate:  req.BulkUpdate,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Get handles GET /api/v1/items/:id/tax-settings.
func (h *TaxSettingsHandler) Get(c *gin.Context) {
	cfg, err := h.taxSettingsService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cfg)
}

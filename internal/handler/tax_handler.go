package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petledger/internal/tax"
	"petledger/internal/telemetry"
)

// TaxHandler serves the stateless tax computations.
type TaxHandler struct {
	metrics *telemetry.Metrics
}

// NewTaxHandler creates a new TaxHandler. metrics may be nil.
func NewTaxHandler(metrics *telemetry.Metrics) *TaxHandler {
	return &TaxHandler{metrics: metrics}
}

// Breakdown handles POST /api/v1/tax/breakdown.
func (h *TaxHandler) Breakdown(c *gin.Context) {
	var req BreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", bindingMessage(err))
		return
	}
	if req.Price.IsNegative() {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "price must not be negative")
		return
	}
	cfg, err := req.TaxConfig.ToDomain()
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := cfg.ValidateRates(); err != nil {
		HandleError(c, err)
		return
	}

	h.metrics.ObserveBreakdown(string(cfg.Regime))
	RespondOK(c, tax.ComputeBreakdown(req.Price, cfg))
}

// States handles GET /api/v1/tax/states.
func (h *TaxHandler) States(c *gin.Context) {
	RespondOK(c, tax.States())
}

// State handles GET /api/v1/tax/states/:code.
func (h *TaxHandler) State(c *gin.Context) {
	st, ok := tax.LookupState(c.Param("code"))
	if !ok {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "unknown state code")
		return
	}
	RespondOK(c, st)
}

// Rates handles GET /api/v1/tax/rates.
func (h *TaxHandler) Rates(c *gin.Context) {
	RespondOK(c, tax.StandardRates())
}

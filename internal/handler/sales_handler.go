package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petledger/internal/billing"
)

// SalesHandler prices sale lines.
type SalesHandler struct{}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler() *SalesHandler {
	return &SalesHandler{}
}

// Lines handles POST /api/v1/sales/lines. It returns every line with its
// component split plus the sale totals; an empty item list yields zeros.
func (h *SalesHandler) Lines(c *gin.Context) {
	var req SaleLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", bindingMessage(err))
		return
	}
	items, err := req.ToDomain()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	RespondOK(c, billing.Price(items))
}

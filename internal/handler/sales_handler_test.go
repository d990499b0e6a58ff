package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petledger/internal/billing"
	"petledger/internal/handler"
)

const sampleLine = `{"quantity": 2, "unit_price": "50", "discount": "10", "discount_type": "percentage",
	"tax_config": {"rate": 18, "regime": "intrastate_dual", "classification_code": "2309"}}`

func TestSalesHandler_Lines(t *testing.T) {
	h := handler.NewSalesHandler()

	c, w := jsonContext(http.MethodPost, "/api/v1/sales/lines", `{"items": [`+sampleLine+`,`+sampleLine+`]}`)
	h.Lines(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[billing.Summary](t, w)
	require.Len(t, resp.Data.Lines, 2)

	line := resp.Data.Lines[0]
	assert.Equal(t, "100.00", line.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", line.DiscountAmount.StringFixed(2))
	assert.Equal(t, "90.00", line.TaxableAmount.StringFixed(2))
	assert.Equal(t, "16.20", line.TaxAmount.StringFixed(2))
	assert.Equal(t, "106.20", line.LineTotal.StringFixed(2))
	assert.Equal(t, "8.10", line.Components.CGST.StringFixed(2))

	assert.Equal(t, "212.40", resp.Data.Totals.GrandTotal.StringFixed(2))
	assert.Equal(t, "32.40", resp.Data.Totals.TotalTax.StringFixed(2))
}

func TestSalesHandler_Lines_Empty(t *testing.T) {
	h := handler.NewSalesHandler()

	c, w := jsonContext(http.MethodPost, "/api/v1/sales/lines", `{"items": []}`)
	h.Lines(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[billing.Summary](t, w)
	assert.Empty(t, resp.Data.Lines)
	assert.True(t, resp.Data.Totals.GrandTotal.IsZero())
}

func TestSalesHandler_Lines_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero_quantity", `{"items": [{"quantity": 0, "unit_price": 10}]}`},
		{"negative_price", `{"items": [{"quantity": 1, "unit_price": -10}]}`},
		{"negative_discount", `{"items": [{"quantity": 1, "unit_price": 10, "discount": -1}]}`},
		{"bad_discount_type", `{"items": [{"quantity": 1, "unit_price": 10, "discount_type": "bogo"}]}`},
		{"bad_regime", `{"items": [{"quantity": 1, "unit_price": 10, "tax_config": {"regime": "vat"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewSalesHandler()
			c, w := jsonContext(http.MethodPost, "/api/v1/sales/lines", tt.body)
			h.Lines(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode[any](t, w)
			assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
		})
	}
}

package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tavola/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() *dto.InvoiceResponse {
	d := decimal.RequireFromString
	return &dto.InvoiceResponse{
		OrderID:     1,
		OrderNumber: "ORD-1A2B3C4D",
		Status:      "completed",
		OrderType:   "dine_in",
		Lines: []dto.InvoiceLine{
			{MenuItemID: 1, MenuItemName: "Spaghetti alla carbonara della casa", Quantity: 2, UnitPrice: d("12.50"), Subtotal: d("25.00")},
			{MenuItemID: 2, MenuItemName: "Green salad", Quantity: 1, UnitPrice: d("7.00"), Subtotal: d("7.00")},
		},
		Subtotal:    d("32.00"),
		TaxRate:     d("0.10"),
		TaxAmount:   d("3.20"),
		TotalAmount: d("35.20"),
		IssuedAt:    time.Date(2026, 5, 4, 19, 30, 0, 0, time.UTC),
	}
}

func TestRenderInvoicePDF(t *testing.T) {
	b, err := RenderInvoicePDF(sampleInvoice(), "Tavola")
	require.NoError(t, err)
	require.Greater(t, len(b), 100)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestWriteInvoicePDF_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "invoices")

	path, err := WriteInvoicePDF(sampleInvoice(), "Tavola", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoice_ORD-1A2B3C4D.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

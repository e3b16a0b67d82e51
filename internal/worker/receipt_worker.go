package worker

// receipt_worker.go
// Processes QueueReceipt jobs: renders the invoice PDF for a paid order to
// disk and queues the e-mail that delivers it.

import (
	"context"
	"encoding/json"
	"fmt"

	"tavola/internal/dto"
	"tavola/internal/infra"

	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job body sent to QueueReceipt.
type ReceiptJobPayload struct {
	PaymentID uint   `json:"payment_id"`
	OrderID   uint   `json:"order_id"`
	ToEmail   string `json:"to_email"`
}

// InvoiceSource builds the invoice of an order. Satisfied by service.PaymentService.
type InvoiceSource interface {
	Invoice(ctx context.Context, orderID uint) (*dto.InvoiceResponse, error)
}

type ReceiptWorker struct {
	invoices     InvoiceSource
	dispatcher   *Dispatcher
	storagePath  string
	businessName string
}

func NewReceiptWorker(invoices InvoiceSource, dispatcher *Dispatcher, storagePath, businessName string) *ReceiptWorker {
	return &ReceiptWorker{
		invoices:     invoices,
		dispatcher:   dispatcher,
		storagePath:  storagePath,
		businessName: businessName,
	}
}

func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return nil
	}

	inv, err := w.invoices.Invoice(ctx, payload.OrderID)
	if err != nil {
		return fmt.Errorf("load invoice for order %d: %w", payload.OrderID, err)
	}
	path, err := infra.WriteInvoicePDF(inv, w.businessName, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().
		Uint("payment_id", payload.PaymentID).
		Str("order_number", inv.OrderNumber).
		Str("path", path).
		Msg("receipt_worker: invoice PDF written")

	if payload.ToEmail == "" {
		return nil
	}
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail:        payload.ToEmail,
		Subject:        fmt.Sprintf("%s receipt for order %s", w.businessName, inv.OrderNumber),
		Body:           fmt.Sprintf("Thank you for your visit. Total paid: %s.\nYour invoice is attached.", inv.TotalAmount.StringFixed(2)),
		AttachmentPath: path,
	})
}

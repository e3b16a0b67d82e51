package service

import (
	"context"
	"time"

	"tavola/internal/dto"
	"tavola/internal/infra"
	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiptQueue accepts receipt jobs after a payment commits. Implemented by
// worker.Dispatcher; nil disables receipts.
type ReceiptQueue interface {
	EnqueueReceipt(ctx context.Context, paymentID, orderID uint, toEmail string) error
}

type PaymentService interface {
	Invoice(ctx context.Context, orderID uint) (*dto.InvoiceResponse, error)
	InvoicePDF(ctx context.Context, orderID uint) ([]byte, string, error)
	Process(ctx context.Context, req dto.ProcessPaymentRequest) (*dto.PaymentResponse, error)
	Refund(ctx context.Context, paymentID uint) (*dto.PaymentResponse, error)
	Get(ctx context.Context, paymentID uint) (*dto.PaymentResponse, error)
	List(ctx context.Context, skip, limit int) ([]dto.PaymentResponse, error)
	ListByOrder(ctx context.Context, orderID uint) ([]dto.PaymentResponse, error)
}

type paymentService struct {
	payments     repository.PaymentRepository
	orders       repository.OrderRepository
	receipts     ReceiptQueue
	taxRate      decimal.Decimal
	businessName string
}

func NewPaymentService(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	receipts ReceiptQueue,
	taxRate decimal.Decimal,
	businessName string,
) PaymentService {
	return &paymentService{
		payments:     payments,
		orders:       orders,
		receipts:     receipts,
		taxRate:      taxRate,
		businessName: businessName,
	}
}

func (s *paymentService) Invoice(ctx context.Context, orderID uint) (*dto.InvoiceResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, translate(err, "order")
	}
	subtotal, tax, total := o.Totals(s.taxRate)
	lines := lo.Map(o.Items, func(it model.OrderItem, _ int) dto.InvoiceLine {
		name := ""
		if it.MenuItem != nil {
			name = it.MenuItem.Name
		}
		return dto.InvoiceLine{
			MenuItemID:   it.MenuItemID,
			MenuItemName: name,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Subtotal:     it.Subtotal(),
		}
	})
	return &dto.InvoiceResponse{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		OrderType:   o.OrderType,
		Lines:       lines,
		Subtotal:    subtotal,
		TaxRate:     s.taxRate,
		TaxAmount:   tax,
		TotalAmount: total,
		IssuedAt:    time.Now(),
	}, nil
}

// InvoicePDF returns the rendered invoice and a download file name.
func (s *paymentService) InvoicePDF(ctx context.Context, orderID uint) ([]byte, string, error) {
	inv, err := s.Invoice(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	b, err := infra.RenderInvoicePDF(inv, s.businessName)
	if err != nil {
		return nil, "", err
	}
	return b, "invoice_" + inv.OrderNumber + ".pdf", nil
}

// Process records a payment that settles the whole order.
// The amount must match the tax-inclusive total exactly. Completed and
// cancelled orders take no further payments.
func (s *paymentService) Process(ctx context.Context, req dto.ProcessPaymentRequest) (*dto.PaymentResponse, error) {
	o, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, translate(err, "order")
	}
	if o.Status == model.OrderCompleted || o.Status == model.OrderCancelled {
		return nil, newError(ErrConflict, "order %s is %s and cannot be paid", o.OrderNumber, o.Status)
	}
	_, _, total := o.Totals(s.taxRate)
	if !req.Amount.Equal(total) {
		return nil, newError(ErrAmountMismatch,
			"payment amount %s does not match order total %s", req.Amount.StringFixed(2), total.StringFixed(2))
	}

	if req.TransactionID != nil {
		if _, err := s.payments.FindByTransactionID(ctx, *req.TransactionID); err == nil {
			return nil, newError(ErrConflict, "transaction %s already recorded", *req.TransactionID)
		} else if !isNotFound(err) {
			return nil, err
		}
	}

	p := &model.Payment{
		OrderID:       o.ID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        model.PaymentCompleted,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}
	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if err := s.payments.CreateTx(tx, p); err != nil {
			return err
		}
		return s.orders.UpdateStatusTx(tx, o.ID, model.OrderCompleted)
	})
	if err != nil {
		return nil, translate(err, "payment")
	}

	log.Info().
		Uint("payment_id", p.ID).
		Str("order_number", o.OrderNumber).
		Str("amount", p.Amount.StringFixed(2)).
		Str("method", p.PaymentMethod).
		Msg("payment processed")

	// Receipt delivery is best effort and never fails the payment
	if req.CustomerEmail != nil && *req.CustomerEmail != "" && s.receipts != nil {
		if err := s.receipts.EnqueueReceipt(ctx, p.ID, o.ID, *req.CustomerEmail); err != nil {
			log.Warn().Err(err).Uint("payment_id", p.ID).Msg("enqueue receipt failed")
		}
	}

	resp := paymentToResponse(*p, 0)
	return &resp, nil
}

// Refund marks the payment refunded and reopens its order as pending.
func (s *paymentService) Refund(ctx context.Context, paymentID uint) (*dto.PaymentResponse, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, translate(err, "payment")
	}
	if p.Status == model.PaymentRefunded {
		return nil, newError(ErrConflict, "payment %d is already refunded", p.ID)
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if err := s.payments.UpdateStatusTx(tx, p.ID, model.PaymentRefunded); err != nil {
			return err
		}
		return s.orders.UpdateStatusTx(tx, p.OrderID, model.OrderPending)
	})
	if err != nil {
		return nil, translate(err, "payment")
	}

	log.Info().Uint("payment_id", p.ID).Uint("order_id", p.OrderID).Msg("payment refunded")
	p.Status = model.PaymentRefunded
	resp := paymentToResponse(*p, 0)
	return &resp, nil
}

func (s *paymentService) Get(ctx context.Context, paymentID uint) (*dto.PaymentResponse, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, translate(err, "payment")
	}
	resp := paymentToResponse(*p, 0)
	return &resp, nil
}

func (s *paymentService) List(ctx context.Context, skip, limit int) ([]dto.PaymentResponse, error) {
	list, err := s.payments.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, paymentToResponse), nil
}

func (s *paymentService) ListByOrder(ctx context.Context, orderID uint) ([]dto.PaymentResponse, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, translate(err, "order")
	}
	list, err := s.payments.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, paymentToResponse), nil
}

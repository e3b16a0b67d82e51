package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProcessPaymentRequest struct {
	OrderID       uint            `json:"order_id"       validate:"required"`
	Amount        decimal.Decimal `json:"amount"         validate:"required,gt=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash credit_card debit_card mobile_payment"`
	TransactionID *string         `json:"transaction_id" validate:"omitempty,min=1,max=100"`
	Notes         string          `json:"notes"          validate:"omitempty,max=500"`
	CustomerEmail *string         `json:"customer_email" validate:"omitempty,email"`
}

type PaymentResponse struct {
	ID            uint            `json:"id"`
	OrderID       uint            `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	TransactionID *string         `json:"transaction_id"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

type InvoiceLine struct {
	MenuItemID   uint            `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type InvoiceResponse struct {
	OrderID     uint            `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	OrderType   string          `json:"order_type"`
	Lines       []InvoiceLine   `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	IssuedAt    time.Time       `json:"issued_at"`
}

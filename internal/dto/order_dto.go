package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	MenuItemID uint   `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity"     validate:"required,min=1,max=1000"`
	Notes      string `json:"notes"        validate:"omitempty,max=255"`
}

type CreateOrderRequest struct {
	OrderType string             `json:"order_type" validate:"required,oneof=dine_in takeaway delivery"`
	TableID   *uint              `json:"table_id"`
	Notes     string             `json:"notes"      validate:"omitempty,max=500"`
	Items     []OrderItemRequest `json:"items"      validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateOrderItemStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderItemResponse struct {
	ID           uint            `json:"id"`
	MenuItemID   uint            `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
}

type OrderResponse struct {
	ID          uint                `json:"id"`
	OrderNumber string              `json:"order_number"`
	Status      string              `json:"status"`
	OrderType   string              `json:"order_type"`
	TableID     *uint               `json:"table_id"`
	WaiterID    *uint               `json:"waiter_id"`
	Notes       string              `json:"notes"`
	Items       []OrderItemResponse `json:"items"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	TaxAmount   decimal.Decimal     `json:"tax_amount"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// OrderFilter binds GET /restaurant/orders query params.
type OrderFilter struct {
	Status  string `form:"status"`
	TableID *uint  `form:"table_id"`
	Skip    int    `form:"skip"  validate:"min=0"`
	Limit   int    `form:"limit" validate:"min=0,max=1000"`
}

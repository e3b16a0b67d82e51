package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateIngredientRequest struct {
	Name          string          `json:"name"            validate:"required,min=1,max=100"`
	Description   string          `json:"description"     validate:"omitempty,max=500"`
	Unit          string          `json:"unit"            validate:"required,max=20"`
	CurrentStock  decimal.Decimal `json:"current_stock"   validate:"min=0"`
	MinStockLevel decimal.Decimal `json:"min_stock_level" validate:"min=0"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"   validate:"min=0"`
}

// UpdateIngredientRequest has no current_stock: stock only moves through movements.
type UpdateIngredientRequest struct {
	Name          *string          `json:"name"        validate:"omitempty,min=1,max=100"`
	Description   *string          `json:"description" validate:"omitempty,max=500"`
	Unit          *string          `json:"unit"        validate:"omitempty,max=20"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
	ReorderLevel  *decimal.Decimal `json:"reorder_level"`
}

type IngredientResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	LowStock      bool            `json:"low_stock"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type StockMovementRequest struct {
	IngredientID uint            `json:"ingredient_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"required"`
	MovementType string          `json:"movement_type" validate:"required,oneof=purchase consumption adjustment waste"`
	ReferenceID  *uint           `json:"reference_id"`
	Notes        string          `json:"notes"         validate:"omitempty,max=500"`
}

type StockMovementResponse struct {
	ID             uint             `json:"id"`
	IngredientID   uint             `json:"ingredient_id"`
	IngredientName string           `json:"ingredient_name,omitempty"`
	Quantity       decimal.Decimal  `json:"quantity"`
	MovementType   string           `json:"movement_type"`
	ReferenceID    *uint            `json:"reference_id"`
	Notes          string           `json:"notes"`
	StockAfter     *decimal.Decimal `json:"stock_after,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// MovementFilter binds GET /inventory/movements query params.
type MovementFilter struct {
	IngredientID *uint  `form:"ingredient_id"`
	MovementType string `form:"movement_type" validate:"omitempty,oneof=purchase consumption adjustment waste"`
	Skip         int    `form:"skip"  validate:"min=0"`
	Limit        int    `form:"limit" validate:"min=0,max=1000"`
}

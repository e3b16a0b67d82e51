package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	ImageURL    string `json:"image_url"   validate:"omitempty,max=255"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ImageURL    *string `json:"image_url"   validate:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

type CategoryResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ImageURL    string             `json:"image_url"`
	IsActive    bool               `json:"is_active"`
	Items       []MenuItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type CreateMenuItemRequest struct {
	Name            string          `json:"name"             validate:"required,min=1,max=100"`
	Description     string          `json:"description"      validate:"omitempty,max=500"`
	Price           decimal.Decimal `json:"price"            validate:"required,gt=0"`
	Cost            decimal.Decimal `json:"cost"             validate:"min=0"`
	IsAvailable     *bool           `json:"is_available"`
	ImageURL        string          `json:"image_url"        validate:"omitempty,max=255"`
	PreparationTime int             `json:"preparation_time" validate:"min=0"`
	CategoryID      uint            `json:"category_id"      validate:"required"`
}

type UpdateMenuItemRequest struct {
	Name            *string          `json:"name"             validate:"omitempty,min=1,max=100"`
	Description     *string          `json:"description"      validate:"omitempty,max=500"`
	Price           *decimal.Decimal `json:"price"`
	Cost            *decimal.Decimal `json:"cost"`
	IsAvailable     *bool            `json:"is_available"`
	ImageURL        *string          `json:"image_url"        validate:"omitempty,max=255"`
	PreparationTime *int             `json:"preparation_time" validate:"omitempty,min=0"`
	CategoryID      *uint            `json:"category_id"`
}

type MenuItemResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Cost            decimal.Decimal `json:"cost"`
	IsAvailable     bool            `json:"is_available"`
	ImageURL        string          `json:"image_url"`
	PreparationTime int             `json:"preparation_time"`
	CategoryID      uint            `json:"category_id"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MenuItemFilter binds GET /restaurant/items query params.
type MenuItemFilter struct {
	CategoryID *uint `form:"category_id"`
	Available  *bool `form:"available"`
	Skip       int   `form:"skip"  validate:"min=0"`
	Limit      int   `form:"limit" validate:"min=0,max=1000"`
}

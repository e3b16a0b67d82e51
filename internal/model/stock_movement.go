package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient is a stocked raw material. CurrentStock only changes through StockMovement.
type Ingredient struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;uniqueIndex;not null"`
	Description   string
	Unit          string          `gorm:"size:20;not null"`
	CurrentStock  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	MinStockLevel decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	ReorderLevel  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock reports whether the ingredient is at or below its reorder level.
func (i Ingredient) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.ReorderLevel)
}

// StockMovement records every change of an ingredient's stock.
type StockMovement struct {
	ID           uint            `gorm:"primaryKey"`
	IngredientID uint            `gorm:"not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"` // positive = in, negative = out
	MovementType string          `gorm:"size:20;not null"`
	ReferenceID  *uint
	Notes        string
	CreatedAt    time.Time

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

const (
	MovementPurchase    = "purchase"
	MovementConsumption = "consumption"
	MovementAdjustment  = "adjustment"
	MovementWaste       = "waste"
)

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuCategory groups menu items ("Starters", "Pasta", ...).
type MenuCategory struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;uniqueIndex;not null"`
	Description string
	ImageURL    string
	IsActive    bool `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []MenuItem `gorm:"foreignKey:CategoryID"`
}

// MenuItem is a sellable dish. Price is copied into OrderItem.UnitPrice when ordered.
type MenuItem struct {
	ID              uint            `gorm:"primaryKey"`
	Name            string          `gorm:"size:100;index;not null"`
	Description     string
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cost            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IsAvailable     bool            `gorm:"not null"`
	ImageURL        string
	PreparationTime int  `gorm:"not null;default:0"` // minutes
	CategoryID      uint `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Category *MenuCategory `gorm:"foreignKey:CategoryID"`
}

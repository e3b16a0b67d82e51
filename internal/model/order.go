package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table is a physical dining table.
// Status: "available" | "occupied" | "reserved" | "cleaning"
type Table struct {
	ID          uint   `gorm:"primaryKey"`
	TableNumber string `gorm:"size:10;uniqueIndex;not null"`
	Capacity    int    `gorm:"not null"`
	Location    string
	Status      string `gorm:"size:20;not null;default:'available'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Order is a customer ticket. Subtotal, tax and total are derived from Items, never stored.
type Order struct {
	ID          uint   `gorm:"primaryKey"`
	OrderNumber string `gorm:"size:20;uniqueIndex;not null"`
	Status      string `gorm:"size:20;not null;index"`
	OrderType   string `gorm:"size:20;not null"`
	TableID     *uint  `gorm:"index"`
	WaiterID    *uint  `gorm:"index"`
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Table    *Table      `gorm:"foreignKey:TableID;constraint:OnDelete:SET NULL"`
	Waiter   *User       `gorm:"foreignKey:WaiterID;constraint:OnDelete:SET NULL"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments []Payment   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// Subtotal is the sum of every line subtotal.
func (o Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

// Totals returns subtotal, tax and total for the given tax rate.
// Tax is rounded half-up to cents, so total always has at most two decimals.
func (o Order) Totals(taxRate decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = o.Subtotal()
	tax = subtotal.Mul(taxRate).Round(2)
	return subtotal, tax, subtotal.Add(tax)
}

// OrderItem is one line of an Order. UnitPrice is the menu price at order time.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey"`
	OrderID    uint            `gorm:"not null;index"`
	MenuItemID uint            `gorm:"not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status     string          `gorm:"size:20;not null"`
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
}

// Subtotal is quantity × unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Payment settles an Order.
// Status: "pending" | "completed" | "failed" | "refunded"
type Payment struct {
	ID            uint            `gorm:"primaryKey"`
	OrderID       uint            `gorm:"not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string          `gorm:"size:20;not null"`
	Status        string          `gorm:"size:20;not null"`
	TransactionID *string         `gorm:"size:100;uniqueIndex"`
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Reservation books a table for a party.
type Reservation struct {
	ID              uint      `gorm:"primaryKey"`
	CustomerName    string    `gorm:"size:100;not null"`
	CustomerPhone   string    `gorm:"size:20;not null"`
	CustomerEmail   string    `gorm:"size:100"`
	ReservationTime time.Time `gorm:"not null;index"`
	PartySize       int       `gorm:"not null"`
	Status          string    `gorm:"size:20;not null"`
	Notes           string
	TableID         *uint `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Table *Table `gorm:"foreignKey:TableID;constraint:OnDelete:SET NULL"`
}

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderServed    = "served"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
	TableCleaning  = "cleaning"
)

const (
	ItemPending   = "pending"
	ItemPreparing = "preparing"
	ItemReady     = "ready"
	ItemServed    = "served"
	ItemCancelled = "cancelled"
)

const (
	ReservationConfirmed = "confirmed"
	ReservationSeated    = "seated"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
	ReservationNoShow    = "no_show"
)

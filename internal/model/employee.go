package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the HR profile attached to a User (one per user).
type Employee struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex"`
	Phone     string `gorm:"size:20"`
	Address   string
	HireDate  time.Time           `gorm:"not null"`
	Position  string              `gorm:"size:50;not null"`
	Salary    decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Attendance is one shift. CheckOut is nil while the shift is open.
type Attendance struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"not null;index"`
	CheckIn    time.Time `gorm:"not null"`
	CheckOut   *time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Employee *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// Leave is a time-off request.
// Status: "pending" | "approved" | "rejected"
type Leave struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"not null;index"`
	StartDate  time.Time `gorm:"not null"`
	EndDate    time.Time `gorm:"not null"`
	Reason     string
	Status     string `gorm:"size:20;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Employee *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

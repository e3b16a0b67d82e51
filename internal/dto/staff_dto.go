package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	UserID   uint                `json:"user_id"   validate:"required"`
	Phone    string              `json:"phone"     validate:"omitempty,max=20"`
	Address  string              `json:"address"   validate:"omitempty,max=255"`
	HireDate time.Time           `json:"hire_date" validate:"required"`
	Position string              `json:"position"  validate:"required,min=1,max=50"`
	Salary   decimal.NullDecimal `json:"salary"`
}

type UpdateEmployeeRequest struct {
	Phone    *string          `json:"phone"     validate:"omitempty,max=20"`
	Address  *string          `json:"address"   validate:"omitempty,max=255"`
	HireDate *time.Time       `json:"hire_date"`
	Position *string          `json:"position"  validate:"omitempty,min=1,max=50"`
	Salary   *decimal.Decimal `json:"salary"`
}

type EmployeeResponse struct {
	ID        uint                `json:"id"`
	UserID    uint                `json:"user_id"`
	Username  string              `json:"username,omitempty"`
	FullName  string              `json:"full_name,omitempty"`
	Phone     string              `json:"phone"`
	Address   string              `json:"address"`
	HireDate  time.Time           `json:"hire_date"`
	Position  string              `json:"position"`
	Salary    decimal.NullDecimal `json:"salary"`
	CreatedAt time.Time           `json:"created_at"`
}

type CheckInRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=255"`
}

type AttendanceResponse struct {
	ID         uint       `json:"id"`
	EmployeeID uint       `json:"employee_id"`
	CheckIn    time.Time  `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	Notes      string     `json:"notes"`
}

type CreateLeaveRequest struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date"   validate:"required"`
	Reason    string    `json:"reason"     validate:"omitempty,max=500"`
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type LeaveResponse struct {
	ID         uint      `json:"id"`
	EmployeeID uint      `json:"employee_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// LeaveFilter binds GET /staff/leaves query params.
type LeaveFilter struct {
	EmployeeID *uint  `form:"employee_id"`
	Status     string `form:"status" validate:"omitempty,oneof=pending approved rejected"`
}

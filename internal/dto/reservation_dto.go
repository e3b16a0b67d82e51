package dto

import "time"

type CreateReservationRequest struct {
	CustomerName    string    `json:"customer_name"    validate:"required,min=1,max=100"`
	CustomerPhone   string    `json:"customer_phone"   validate:"required,min=3,max=20"`
	CustomerEmail   string    `json:"customer_email"   validate:"omitempty,email,max=100"`
	ReservationTime time.Time `json:"reservation_time" validate:"required"`
	PartySize       int       `json:"party_size"       validate:"required,min=1,max=100"`
	Notes           string    `json:"notes"            validate:"omitempty,max=500"`
	TableID         *uint     `json:"table_id"`
}

type UpdateReservationRequest struct {
	CustomerName    *string    `json:"customer_name"    validate:"omitempty,min=1,max=100"`
	CustomerPhone   *string    `json:"customer_phone"   validate:"omitempty,min=3,max=20"`
	CustomerEmail   *string    `json:"customer_email"   validate:"omitempty,email,max=100"`
	ReservationTime *time.Time `json:"reservation_time"`
	PartySize       *int       `json:"party_size"       validate:"omitempty,min=1,max=100"`
	Notes           *string    `json:"notes"            validate:"omitempty,max=500"`
	TableID         *uint      `json:"table_id"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed seated completed cancelled no_show"`
}

type ReservationResponse struct {
	ID              uint      `json:"id"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerEmail   string    `json:"customer_email"`
	ReservationTime time.Time `json:"reservation_time"`
	PartySize       int       `json:"party_size"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	TableID         *uint     `json:"table_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// ReservationFilter binds GET /restaurant/reservations query params.
type ReservationFilter struct {
	Status string     `form:"status"`
	From   *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To     *time.Time `form:"to"   time_format:"2006-01-02T15:04:05Z07:00"`
	Skip   int        `form:"skip"  validate:"min=0"`
	Limit  int        `form:"limit" validate:"min=0,max=1000"`
}

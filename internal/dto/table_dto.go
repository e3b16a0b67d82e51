package dto

import "time"

type CreateTableRequest struct {
	TableNumber string `json:"table_number" validate:"required,min=1,max=10"`
	Capacity    int    `json:"capacity"     validate:"required,min=1,max=50"`
	Location    string `json:"location"     validate:"omitempty,max=50"`
	Status      string `json:"status"       validate:"omitempty,oneof=available occupied reserved cleaning"`
}

type UpdateTableRequest struct {
	TableNumber *string `json:"table_number" validate:"omitempty,min=1,max=10"`
	Capacity    *int    `json:"capacity"     validate:"omitempty,min=1,max=50"`
	Location    *string `json:"location"     validate:"omitempty,max=50"`
	Status      *string `json:"status"       validate:"omitempty,oneof=available occupied reserved cleaning"`
}

type TableResponse struct {
	ID          uint      `json:"id"`
	TableNumber string    `json:"table_number"`
	Capacity    int       `json:"capacity"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

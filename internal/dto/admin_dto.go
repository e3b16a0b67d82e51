package dto

import "time"

type CreateUserRequest struct {
	Username string `json:"username"  validate:"required,min=3,max=50"`
	Email    string `json:"email"     validate:"required,email,max=100"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	IsActive *bool  `json:"is_active"`
	RoleID   *uint  `json:"role_id"`
}

// UpdateUserRequest lists every user field an admin may change; nil means unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username"  validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email"     validate:"omitempty,email,max=100"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	IsActive *bool   `json:"is_active"`
	RoleID   *uint   `json:"role_id"`
	Password *string `json:"password"  validate:"omitempty,min=8"`
}

type CreateRoleRequest struct {
	Name          string `json:"name"           validate:"required,min=2,max=50"`
	Description   string `json:"description"    validate:"omitempty,max=255"`
	PermissionIDs []uint `json:"permission_ids"`
}

type UpdateRoleRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=50"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type CreatePermissionRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

type PermissionResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type RoleResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Permissions []PermissionResponse `json:"permissions"`
	CreatedAt   time.Time            `json:"created_at"`
}

// Pagination is the skip/limit pair accepted by every list endpoint.
type Pagination struct {
	Skip  int `form:"skip"  validate:"min=0"`
	Limit int `form:"limit" validate:"min=0,max=1000"`
}

package model

import "time"

// User is a back-office account. Access is decided by the permissions of its Role.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:50;uniqueIndex;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string `gorm:"size:100"`
	IsActive     bool   `gorm:"not null"`
	LastLogin    *time.Time
	RoleID       *uint `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Role *Role `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL"`
}

// Role groups permissions. The link rows live in RolePermission.
type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Permissions []Permission `gorm:"many2many:role_permissions"`
}

// Permission is a named capability checked by the router, e.g. "manage_orders".
type Permission struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RolePermission is the explicit join row between Role and Permission.
type RolePermission struct {
	RoleID       uint `gorm:"primaryKey"`
	PermissionID uint `gorm:"primaryKey"`
	CreatedAt    time.Time
}

// Baseline permission names seeded on startup.
const (
	PermViewUsers          = "view_users"
	PermManageUsers        = "manage_users"
	PermViewRoles          = "view_roles"
	PermManageRoles        = "manage_roles"
	PermViewPermissions    = "view_permissions"
	PermManagePermissions  = "manage_permissions"
	PermManageMenu         = "manage_menu"
	PermManageTables       = "manage_tables"
	PermManageOrders       = "manage_orders"
	PermManageReservations = "manage_reservations"
	PermProcessPayments    = "process_payments"
	PermManageInventory    = "manage_inventory"
	PermManageStaff        = "manage_staff"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

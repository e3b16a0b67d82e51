package service

import (
	"context"
	"fmt"

	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BaselinePermissions is seeded on every start; the admin role receives all of them.
var BaselinePermissions = []model.Permission{
	{Name: model.PermViewUsers, Description: "List and read users"},
	{Name: model.PermManageUsers, Description: "Create, update and delete users"},
	{Name: model.PermViewRoles, Description: "List and read roles"},
	{Name: model.PermManageRoles, Description: "Create, update and delete roles"},
	{Name: model.PermViewPermissions, Description: "List permissions"},
	{Name: model.PermManagePermissions, Description: "Create and delete permissions"},
	{Name: model.PermManageMenu, Description: "Maintain menu categories and items"},
	{Name: model.PermManageTables, Description: "Maintain dining tables"},
	{Name: model.PermManageOrders, Description: "Take and update orders"},
	{Name: model.PermManageReservations, Description: "Book and update reservations"},
	{Name: model.PermProcessPayments, Description: "Invoice, charge and refund orders"},
	{Name: model.PermManageInventory, Description: "Maintain ingredients and stock movements"},
	{Name: model.PermManageStaff, Description: "Maintain employees, attendance and leave"},
}

// staffPermissions are granted to the default role of self-registered users.
var staffPermissions = []string{model.PermManageOrders, model.PermManageReservations}

// AdminAccount describes the optional bootstrap administrator.
// An empty Password skips user creation.
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// Seeder creates baseline permissions, the admin and staff roles and,
// optionally, an admin user. Every step is idempotent.
type Seeder struct {
	roles repository.RoleRepository
	perms repository.PermissionRepository
	users repository.UserRepository
}

func NewSeeder(roles repository.RoleRepository, perms repository.PermissionRepository, users repository.UserRepository) *Seeder {
	return &Seeder{roles: roles, perms: perms, users: users}
}

func (s *Seeder) Run(ctx context.Context, admin AdminAccount) error {
	byName := make(map[string]uint, len(BaselinePermissions))
	for _, p := range BaselinePermissions {
		existing, err := s.perms.FindByName(ctx, p.Name)
		if err == nil {
			byName[p.Name] = existing.ID
			continue
		}
		if !isNotFound(err) {
			return fmt.Errorf("seed permission %s: %w", p.Name, err)
		}
		perm := p
		if err := s.perms.Create(ctx, &perm); err != nil {
			return fmt.Errorf("seed permission %s: %w", p.Name, err)
		}
		byName[p.Name] = perm.ID
	}

	all := make([]string, 0, len(BaselinePermissions))
	for _, p := range BaselinePermissions {
		all = append(all, p.Name)
	}
	adminRole, err := s.ensureRole(ctx, model.RoleAdmin, "Full access", all, byName)
	if err != nil {
		return err
	}
	if _, err := s.ensureRole(ctx, model.RoleStaff, "Default role for registered staff", staffPermissions, byName); err != nil {
		return err
	}

	if admin.Password == "" {
		return nil
	}
	return s.ensureAdminUser(ctx, admin, adminRole)
}

func (s *Seeder) ensureRole(ctx context.Context, name, description string, permNames []string, byName map[string]uint) (*model.Role, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("seed role %s: %w", name, err)
	}

	err = runTx(ctx, s.roles.DB(), func(tx *gorm.DB) error {
		if role == nil {
			role = &model.Role{Name: name, Description: description}
			if err := s.roles.CreateTx(tx, role); err != nil {
				return err
			}
		}
		for _, pn := range permNames {
			if err := s.roles.AssignPermissionTx(tx, role.ID, byName[pn]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed role %s: %w", name, err)
	}
	return role, nil
}

func (s *Seeder) ensureAdminUser(ctx context.Context, admin AdminAccount, role *model.Role) error {
	if _, err := s.users.FindByUsername(ctx, admin.Username); err == nil {
		return nil
	} else if !isNotFound(err) {
		return fmt.Errorf("seed admin user: %w", err)
	}

	hash, err := hashPassword(admin.Password)
	if err != nil {
		return err
	}
	u := &model.User{
		Username:     admin.Username,
		Email:        admin.Email,
		FullName:     "Administrator",
		PasswordHash: hash,
		IsActive:     true,
		RoleID:       &role.ID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	log.Info().Str("username", admin.Username).Msg("seed: admin user created")
	return nil
}

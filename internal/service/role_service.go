package service

import (
	"context"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// RoleService manages roles, permissions and the links between them.
type RoleService interface {
	ListRoles(ctx context.Context) ([]dto.RoleResponse, error)
	GetRole(ctx context.Context, id uint) (*dto.RoleResponse, error)
	CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*dto.RoleResponse, error)
	UpdateRole(ctx context.Context, id uint, req dto.UpdateRoleRequest) (*dto.RoleResponse, error)
	DeleteRole(ctx context.Context, id uint) error

	AssignPermission(ctx context.Context, roleID, permissionID uint) (*dto.RoleResponse, error)
	RevokePermission(ctx context.Context, roleID, permissionID uint) (*dto.RoleResponse, error)

	ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error)
	CreatePermission(ctx context.Context, req dto.CreatePermissionRequest) (*dto.PermissionResponse, error)
	DeletePermission(ctx context.Context, id uint) error
}

type roleService struct {
	roles repository.RoleRepository
	perms repository.PermissionRepository
}

func NewRoleService(roles repository.RoleRepository, perms repository.PermissionRepository) RoleService {
	return &roleService{roles: roles, perms: perms}
}

func (s *roleService) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(roles, roleToResponse), nil
}

func (s *roleService) GetRole(ctx context.Context, id uint) (*dto.RoleResponse, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "role")
	}
	resp := roleToResponse(*role, 0)
	return &resp, nil
}

func (s *roleService) ensureRoleNameFree(ctx context.Context, name string, exceptID uint) error {
	existing, err := s.roles.FindByName(ctx, name)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return newError(ErrConflict, "role %q already exists", name)
	}
	return nil
}

func (s *roleService) CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if err := s.ensureRoleNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}
	ids := lo.Uniq(req.PermissionIDs)
	perms, err := s.perms.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(ids) {
		return nil, notFound("permission")
	}

	role := &model.Role{Name: req.Name, Description: req.Description}
	txErr := runTx(ctx, s.roles.DB(), func(tx *gorm.DB) error {
		if err := s.roles.CreateTx(tx, role); err != nil {
			return err
		}
		for _, id := range ids {
			if err := s.roles.AssignPermissionTx(tx, role.ID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, translate(txErr, "role")
	}
	return s.GetRole(ctx, role.ID)
}

func (s *roleService) UpdateRole(ctx context.Context, id uint, req dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "role")
	}
	if req.Name != nil && *req.Name != role.Name {
		if err := s.ensureRoleNameFree(ctx, *req.Name, id); err != nil {
			return nil, err
		}
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, translate(err, "role")
	}
	resp := roleToResponse(*role, 0)
	return &resp, nil
}

func (s *roleService) DeleteRole(ctx context.Context, id uint) error {
	err := runTx(ctx, s.roles.DB(), func(tx *gorm.DB) error {
		return s.roles.DeleteTx(tx, id)
	})
	return translate(err, "role")
}

func (s *roleService) AssignPermission(ctx context.Context, roleID, permissionID uint) (*dto.RoleResponse, error) {
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		return nil, translate(err, "role")
	}
	if _, err := s.perms.FindByID(ctx, permissionID); err != nil {
		return nil, translate(err, "permission")
	}
	err := runTx(ctx, s.roles.DB(), func(tx *gorm.DB) error {
		return s.roles.AssignPermissionTx(tx, roleID, permissionID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRole(ctx, roleID)
}

func (s *roleService) RevokePermission(ctx context.Context, roleID, permissionID uint) (*dto.RoleResponse, error) {
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		return nil, translate(err, "role")
	}
	if _, err := s.perms.FindByID(ctx, permissionID); err != nil {
		return nil, translate(err, "permission")
	}
	if err := s.roles.RevokePermission(ctx, roleID, permissionID); err != nil {
		return nil, err
	}
	return s.GetRole(ctx, roleID)
}

func (s *roleService) ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error) {
	perms, err := s.perms.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(perms, permissionToResponse), nil
}

func (s *roleService) CreatePermission(ctx context.Context, req dto.CreatePermissionRequest) (*dto.PermissionResponse, error) {
	existing, err := s.perms.FindByName(ctx, req.Name)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, newError(ErrConflict, "permission %q already exists", req.Name)
	}
	p := &model.Permission{Name: req.Name, Description: req.Description}
	if err := s.perms.Create(ctx, p); err != nil {
		return nil, translate(err, "permission")
	}
	resp := permissionToResponse(*p, 0)
	return &resp, nil
}

func (s *roleService) DeletePermission(ctx context.Context, id uint) error {
	return translate(s.perms.Delete(ctx, id), "permission")
}

package repository

import (
	"context"

	"tavola/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoleRepository covers roles and their permission links.
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	CreateTx(tx *gorm.DB, role *model.Role) error
	FindByID(ctx context.Context, id uint) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
	Update(ctx context.Context, role *model.Role) error
	DeleteTx(tx *gorm.DB, id uint) error

	// AssignPermissionTx upserts the join row; an existing link is left as is.
	AssignPermissionTx(tx *gorm.DB, roleID, permissionID uint) error
	RevokePermission(ctx context.Context, roleID, permissionID uint) error

	DB() *gorm.DB
}

type roleRepo struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) RoleRepository { return &roleRepo{db: db} }

func (r *roleRepo) DB() *gorm.DB { return r.db }

func (r *roleRepo) Create(ctx context.Context, role *model.Role) error {
	return r.CreateTx(r.db.WithContext(ctx), role)
}

func (r *roleRepo) CreateTx(tx *gorm.DB, role *model.Role) error {
	return tx.Omit(clause.Associations).Create(role).Error
}

func (r *roleRepo) FindByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Preload("Permissions", func(db *gorm.DB) *gorm.DB {
		return db.Order("permissions.name ASC")
	}).First(&role, id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) Update(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(role).Error
}

func (r *roleRepo) DeleteTx(tx *gorm.DB, id uint) error {
	if err := tx.Where("role_id = ?", id).Delete(&model.RolePermission{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&model.User{}).Where("role_id = ?", id).Update("role_id", nil).Error; err != nil {
		return err
	}
	res := tx.Delete(&model.Role{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *roleRepo) AssignPermissionTx(tx *gorm.DB, roleID, permissionID uint) error {
	link := model.RolePermission{RoleID: roleID, PermissionID: permissionID}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

func (r *roleRepo) RevokePermission(ctx context.Context, roleID, permissionID uint) error {
	return r.db.WithContext(ctx).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&model.RolePermission{}).Error
}

// PermissionRepository manages permission definitions.
type PermissionRepository interface {
	Create(ctx context.Context, p *model.Permission) error
	FindByID(ctx context.Context, id uint) (*model.Permission, error)
	FindByName(ctx context.Context, name string) (*model.Permission, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Permission, error)
	List(ctx context.Context) ([]model.Permission, error)
	Delete(ctx context.Context, id uint) error
}

type permissionRepo struct{ db *gorm.DB }

func NewPermissionRepository(db *gorm.DB) PermissionRepository { return &permissionRepo{db: db} }

func (r *permissionRepo) Create(ctx context.Context, p *model.Permission) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *permissionRepo) FindByID(ctx context.Context, id uint) (*model.Permission, error) {
	var p model.Permission
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *permissionRepo) FindByName(ctx context.Context, name string) (*model.Permission, error) {
	var p model.Permission
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *permissionRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.Permission, error) {
	var list []model.Permission
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *permissionRepo) List(ctx context.Context) ([]model.Permission, error) {
	var list []model.Permission
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *permissionRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", id).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Permission{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

package repository

import (
	"context"

	"tavola/internal/dto"
	"tavola/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MenuItemRepository defines the data access contract for menu items.
type MenuItemRepository interface {
	Create(ctx context.Context, m *model.MenuItem) error
	FindByID(ctx context.Context, id uint) (*model.MenuItem, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.MenuItem, error)
	List(ctx context.Context, filter dto.MenuItemFilter) ([]model.MenuItem, error)
	Update(ctx context.Context, m *model.MenuItem) error
	Delete(ctx context.Context, id uint) error
}

type menuItemRepo struct{ db *gorm.DB }

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository { return &menuItemRepo{db: db} }

func (r *menuItemRepo) Create(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *menuItemRepo) FindByID(ctx context.Context, id uint) (*model.MenuItem, error) {
	var m model.MenuItem
	if err := r.db.WithContext(ctx).Preload("Category").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *menuItemRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.MenuItem, error) {
	var list []model.MenuItem
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *menuItemRepo) List(ctx context.Context, filter dto.MenuItemFilter) ([]model.MenuItem, error) {
	skip, limit := page(filter.Skip, filter.Limit)
	q := r.db.WithContext(ctx).Model(&model.MenuItem{})
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Available != nil {
		q = q.Where("is_available = ?", *filter.Available)
	}
	var list []model.MenuItem
	err := q.Order("name ASC").Offset(skip).Limit(limit).Find(&list).Error
	return list, err
}

func (r *menuItemRepo) Update(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
}

func (r *menuItemRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.MenuItem{}, id)
}

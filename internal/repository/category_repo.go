package repository

import (
	"context"

	"tavola/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository defines CRUD operations for MenuCategory.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.MenuCategory) error
	List(ctx context.Context, skip, limit int) ([]model.MenuCategory, error)
	FindByID(ctx context.Context, id uint) (*model.MenuCategory, error)
	FindByName(ctx context.Context, name string) (*model.MenuCategory, error)
	Update(ctx context.Context, c *model.MenuCategory) error
	Delete(ctx context.Context, id uint) error
	CountItems(ctx context.Context, id uint) (int64, error)
}

type categoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.MenuCategory) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *categoryRepository) List(ctx context.Context, skip, limit int) ([]model.MenuCategory, error) {
	skip, limit = page(skip, limit)
	var list []model.MenuCategory
	err := r.db.WithContext(ctx).Order("name asc").Offset(skip).Limit(limit).Find(&list).Error
	return list, err
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.MenuCategory, error) {
	var c model.MenuCategory
	err := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("menu_items.name ASC")
	}).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*model.MenuCategory, error) {
	var c model.MenuCategory
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *model.MenuCategory) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.MenuCategory{}, id)
}

func (r *categoryRepository) CountItems(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}

package repository

import (
	"context"

	"tavola/internal/model"

	"gorm.io/gorm"
)

type TableRepository interface {
	Create(ctx context.Context, t *model.Table) error
	FindByID(ctx context.Context, id uint) (*model.Table, error)
	FindByNumber(ctx context.Context, number string) (*model.Table, error)
	List(ctx context.Context, skip, limit int) ([]model.Table, error)
	Update(ctx context.Context, t *model.Table) error
	Delete(ctx context.Context, id uint) error
}

type tableRepo struct{ db *gorm.DB }

func NewTableRepository(db *gorm.DB) TableRepository { return &tableRepo{db: db} }

func (r *tableRepo) Create(ctx context.Context, t *model.Table) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tableRepo) FindByID(ctx context.Context, id uint) (*model.Table, error) {
	var t model.Table
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tableRepo) FindByNumber(ctx context.Context, number string) (*model.Table, error) {
	var t model.Table
	if err := r.db.WithContext(ctx).Where("table_number = ?", number).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tableRepo) List(ctx context.Context, skip, limit int) ([]model.Table, error) {
	skip, limit = page(skip, limit)
	var list []model.Table
	err := r.db.WithContext(ctx).Order("table_number ASC").Offset(skip).Limit(limit).Find(&list).Error
	return list, err
}

func (r *tableRepo) Update(ctx context.Context, t *model.Table) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tableRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Table{}, id)
}

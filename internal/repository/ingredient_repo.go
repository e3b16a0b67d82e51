package repository

import (
	"context"

	"tavola/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovementFilter defines filters for listing stock movements.
type MovementFilter struct {
	IngredientID *uint
	MovementType string
	Skip         int
	Limit        int
}

type IngredientRepository interface {
	Create(ctx context.Context, i *model.Ingredient) error
	FindByID(ctx context.Context, id uint) (*model.Ingredient, error)
	FindByName(ctx context.Context, name string) (*model.Ingredient, error)
	List(ctx context.Context, skip, limit int) ([]model.Ingredient, error)
	ListLowStock(ctx context.Context) ([]model.Ingredient, error)
	// Update writes the descriptive columns only; current_stock changes through movements.
	Update(ctx context.Context, i *model.Ingredient) error
	Delete(ctx context.Context, id uint) error

	// Used inside transactions; callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uint) (*model.Ingredient, error)
	CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error
	// ApplyDeltaTx adds delta to current_stock in SQL, never read-modify-write.
	ApplyDeltaTx(tx *gorm.DB, id uint, delta decimal.Decimal) error

	ListMovements(ctx context.Context, filter MovementFilter) ([]model.StockMovement, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepo{db: db}
}

func (r *ingredientRepo) DB() *gorm.DB { return r.db }

func (r *ingredientRepo) Create(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredientRepo) FindByID(ctx context.Context, id uint) (*model.Ingredient, error) {
	return r.FindByIDTx(r.db.WithContext(ctx), id)
}

func (r *ingredientRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Ingredient, error) {
	var i model.Ingredient
	if err := tx.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ingredientRepo) FindByName(ctx context.Context, name string) (*model.Ingredient, error) {
	var i model.Ingredient
	if err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ingredientRepo) List(ctx context.Context, skip, limit int) ([]model.Ingredient, error) {
	skip, limit = page(skip, limit)
	var list []model.Ingredient
	err := r.db.WithContext(ctx).Order("name ASC").Offset(skip).Limit(limit).Find(&list).Error
	return list, err
}

func (r *ingredientRepo) ListLowStock(ctx context.Context) ([]model.Ingredient, error) {
	var list []model.Ingredient
	err := r.db.WithContext(ctx).
		Where("current_stock <= reorder_level").
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *ingredientRepo) Update(ctx context.Context, i *model.Ingredient) error {
	res := r.db.WithContext(ctx).
		Model(&model.Ingredient{}).
		Where("id = ?", i.ID).
		Select("name", "description", "unit", "min_stock_level", "reorder_level", "updated_at").
		Updates(i)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ingredientRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&model.StockMovement{}).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &model.Ingredient{}, id)
	})
}

func (r *ingredientRepo) CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Omit("Ingredient").Create(m).Error
}

func (r *ingredientRepo) ApplyDeltaTx(tx *gorm.DB, id uint, delta decimal.Decimal) error {
	res := tx.Model(&model.Ingredient{}).
		Where("id = ?", id).
		Update("current_stock", gorm.Expr("current_stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ingredientRepo) ListMovements(ctx context.Context, filter MovementFilter) ([]model.StockMovement, error) {
	skip, limit := page(filter.Skip, filter.Limit)
	q := r.db.WithContext(ctx).Model(&model.StockMovement{}).Preload("Ingredient")
	if filter.IngredientID != nil {
		q = q.Where("ingredient_id = ?", *filter.IngredientID)
	}
	if filter.MovementType != "" {
		q = q.Where("movement_type = ?", filter.MovementType)
	}

	var list []model.StockMovement
	err := q.Order("created_at DESC, id DESC").Offset(skip).Limit(limit).Find(&list).Error
	return list, err
}

package repository

import (
	"context"

	"tavola/internal/dto"
	"tavola/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// CreateTx inserts the order header and its Items in one statement batch.
	CreateTx(tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdateStatusTx(tx *gorm.DB, id uint, status string) error
	UpdateItemStatus(ctx context.Context, orderID, itemID uint, status string) error
	Delete(ctx context.Context, id uint) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Omit("Table", "Waiter", "Payments").Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		Preload("Items.MenuItem").
		Preload("Payments").
		Preload("Table").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, error) {
	skip, limit := page(filter.Skip, filter.Limit)
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.TableID != nil {
		q = q.Where("table_id = ?", *filter.TableID)
	}
	var orders []model.Order
	err := q.Preload("Items.MenuItem").
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.UpdateStatusTx(r.db.WithContext(ctx), id, status)
}

func (r *orderRepo) UpdateStatusTx(tx *gorm.DB, id uint, status string) error {
	res := tx.Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepo) UpdateItemStatus(ctx context.Context, orderID, itemID uint, status string) error {
	res := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the order with its items and payments.
func (r *orderRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &model.Order{}, id)
	})
}

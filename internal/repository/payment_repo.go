package repository

import (
	"context"

	"tavola/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreateTx(tx *gorm.DB, p *model.Payment) error
	FindByID(ctx context.Context, id uint) (*model.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
	List(ctx context.Context, skip, limit int) ([]model.Payment, error)
	ListByOrder(ctx context.Context, orderID uint) ([]model.Payment, error)
	UpdateStatusTx(tx *gorm.DB, id uint, status string) error
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) CreateTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uint) (*model.Payment, error) {
	var p model.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	var p model.Payment
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) List(ctx context.Context, skip, limit int) ([]model.Payment, error) {
	skip, limit = page(skip, limit)
	var list []model.Payment
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Offset(skip).Limit(limit).Find(&list).Error
	return list, err
}

func (r *paymentRepo) ListByOrder(ctx context.Context, orderID uint) ([]model.Payment, error) {
	var list []model.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *paymentRepo) UpdateStatusTx(tx *gorm.DB, id uint, status string) error {
	res := tx.Model(&model.Payment{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

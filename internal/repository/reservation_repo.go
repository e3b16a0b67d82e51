package repository

import (
	"context"

	"tavola/internal/dto"
	"tavola/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository interface {
	Create(ctx context.Context, r *model.Reservation) error
	FindByID(ctx context.Context, id uint) (*model.Reservation, error)
	List(ctx context.Context, filter dto.ReservationFilter) ([]model.Reservation, error)
	Update(ctx context.Context, r *model.Reservation) error
	Delete(ctx context.Context, id uint) error
}

type reservationRepo struct{ db *gorm.DB }

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
}

func (r *reservationRepo) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	var res model.Reservation
	if err := r.db.WithContext(ctx).Preload("Table").First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepo) List(ctx context.Context, filter dto.ReservationFilter) ([]model.Reservation, error) {
	skip, limit := page(filter.Skip, filter.Limit)
	q := r.db.WithContext(ctx).Model(&model.Reservation{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("reservation_time >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("reservation_time < ?", *filter.To)
	}
	var list []model.Reservation
	err := q.Order("reservation_time ASC").Offset(skip).Limit(limit).Find(&list).Error
	return list, err
}

func (r *reservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(res).Error
}

func (r *reservationRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Reservation{}, id)
}

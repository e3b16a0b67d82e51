package service

import (
	"context"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/samber/lo"
)

type ReservationService interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (*dto.ReservationResponse, error)
	List(ctx context.Context, filter dto.ReservationFilter) ([]dto.ReservationResponse, error)
	Get(ctx context.Context, id uint) (*dto.ReservationResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateReservationRequest) (*dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*dto.ReservationResponse, error)
	Delete(ctx context.Context, id uint) error
}

type reservationService struct {
	repo   repository.ReservationRepository
	tables repository.TableRepository
}

func NewReservationService(repo repository.ReservationRepository, tables repository.TableRepository) ReservationService {
	return &reservationService{repo: repo, tables: tables}
}

func (s *reservationService) checkTable(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.tables.FindByID(ctx, *id); err != nil {
		return translate(err, "table")
	}
	return nil
}

func (s *reservationService) Create(ctx context.Context, req dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	if err := s.checkTable(ctx, req.TableID); err != nil {
		return nil, err
	}
	r := &model.Reservation{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ReservationTime: req.ReservationTime,
		PartySize:       req.PartySize,
		Status:          model.ReservationConfirmed,
		Notes:           req.Notes,
		TableID:         req.TableID,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, translate(err, "reservation")
	}
	resp := reservationToResponse(*r, 0)
	return &resp, nil
}

func (s *reservationService) List(ctx context.Context, filter dto.ReservationFilter) ([]dto.ReservationResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, reservationToResponse), nil
}

func (s *reservationService) Get(ctx context.Context, id uint) (*dto.ReservationResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "reservation")
	}
	resp := reservationToResponse(*r, 0)
	return &resp, nil
}

func (s *reservationService) Update(ctx context.Context, id uint, req dto.UpdateReservationRequest) (*dto.ReservationResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "reservation")
	}
	if err := s.checkTable(ctx, req.TableID); err != nil {
		return nil, err
	}
	if req.CustomerName != nil {
		r.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		r.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerEmail != nil {
		r.CustomerEmail = *req.CustomerEmail
	}
	if req.ReservationTime != nil {
		r.ReservationTime = *req.ReservationTime
	}
	if req.PartySize != nil {
		r.PartySize = *req.PartySize
	}
	if req.Notes != nil {
		r.Notes = *req.Notes
	}
	if req.TableID != nil {
		r.TableID = req.TableID
		r.Table = nil
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, translate(err, "reservation")
	}
	resp := reservationToResponse(*r, 0)
	return &resp, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id uint, status string) (*dto.ReservationResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "reservation")
	}
	r.Status = status
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, translate(err, "reservation")
	}
	resp := reservationToResponse(*r, 0)
	return &resp, nil
}

func (s *reservationService) Delete(ctx context.Context, id uint) error {
	return translate(s.repo.Delete(ctx, id), "reservation")
}

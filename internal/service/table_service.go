package service

import (
	"context"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/samber/lo"
)

type TableService interface {
	Create(ctx context.Context, req dto.CreateTableRequest) (*dto.TableResponse, error)
	List(ctx context.Context, skip, limit int) ([]dto.TableResponse, error)
	Get(ctx context.Context, id uint) (*dto.TableResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateTableRequest) (*dto.TableResponse, error)
	Delete(ctx context.Context, id uint) error
}

type tableService struct {
	repo repository.TableRepository
}

func NewTableService(repo repository.TableRepository) TableService {
	return &tableService{repo: repo}
}

func (s *tableService) ensureNumberFree(ctx context.Context, number string, exceptID uint) error {
	existing, err := s.repo.FindByNumber(ctx, number)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return newError(ErrConflict, "table %s already exists", number)
	}
	return nil
}

func (s *tableService) Create(ctx context.Context, req dto.CreateTableRequest) (*dto.TableResponse, error) {
	if err := s.ensureNumberFree(ctx, req.TableNumber, 0); err != nil {
		return nil, err
	}
	t := &model.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Status:      lo.Ternary(req.Status == "", model.TableAvailable, req.Status),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, translate(err, "table")
	}
	resp := tableToResponse(*t, 0)
	return &resp, nil
}

func (s *tableService) List(ctx context.Context, skip, limit int) ([]dto.TableResponse, error) {
	list, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, tableToResponse), nil
}

func (s *tableService) Get(ctx context.Context, id uint) (*dto.TableResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "table")
	}
	resp := tableToResponse(*t, 0)
	return &resp, nil
}

func (s *tableService) Update(ctx context.Context, id uint, req dto.UpdateTableRequest) (*dto.TableResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "table")
	}
	if req.TableNumber != nil && *req.TableNumber != t.TableNumber {
		if err := s.ensureNumberFree(ctx, *req.TableNumber, id); err != nil {
			return nil, err
		}
		t.TableNumber = *req.TableNumber
	}
	if req.Capacity != nil {
		t.Capacity = *req.Capacity
	}
	if req.Location != nil {
		t.Location = *req.Location
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, translate(err, "table")
	}
	resp := tableToResponse(*t, 0)
	return &resp, nil
}

func (s *tableService) Delete(ctx context.Context, id uint) error {
	return translate(s.repo.Delete(ctx, id), "table")
}

package service

import (
	"context"

	"tavola/internal/dto"
	"tavola/internal/infra"
	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// InventoryService manages ingredients and their stock movements.
// current_stock changes only through RecordMovement.
type InventoryService interface {
	CreateIngredient(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error)
	ListIngredients(ctx context.Context, skip, limit int) ([]dto.IngredientResponse, error)
	GetIngredient(ctx context.Context, id uint) (*dto.IngredientResponse, error)
	UpdateIngredient(ctx context.Context, id uint, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error)
	DeleteIngredient(ctx context.Context, id uint) error

	RecordMovement(ctx context.Context, req dto.StockMovementRequest) (*dto.StockMovementResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.StockMovementResponse, error)
	ExportMovements(ctx context.Context, filter dto.MovementFilter) ([]byte, error)
	LowStock(ctx context.Context) ([]dto.IngredientResponse, error)
}

type inventoryService struct {
	repo repository.IngredientRepository
}

func NewInventoryService(repo repository.IngredientRepository) InventoryService {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) ensureNameFree(ctx context.Context, name string, exceptID uint) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return newError(ErrConflict, "ingredient %q already exists", name)
	}
	return nil
}

func (s *inventoryService) CreateIngredient(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if err := s.ensureNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}
	ing := &model.Ingredient{
		Name:          req.Name,
		Description:   req.Description,
		Unit:          req.Unit,
		CurrentStock:  req.CurrentStock,
		MinStockLevel: req.MinStockLevel,
		ReorderLevel:  req.ReorderLevel,
	}
	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, translate(err, "ingredient")
	}
	resp := ingredientToResponse(*ing, 0)
	return &resp, nil
}

func (s *inventoryService) ListIngredients(ctx context.Context, skip, limit int) ([]dto.IngredientResponse, error) {
	list, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, ingredientToResponse), nil
}

func (s *inventoryService) GetIngredient(ctx context.Context, id uint) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "ingredient")
	}
	resp := ingredientToResponse(*ing, 0)
	return &resp, nil
}

func (s *inventoryService) UpdateIngredient(ctx context.Context, id uint, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "ingredient")
	}
	if req.Name != nil && *req.Name != ing.Name {
		if err := s.ensureNameFree(ctx, *req.Name, id); err != nil {
			return nil, err
		}
		ing.Name = *req.Name
	}
	if req.Description != nil {
		ing.Description = *req.Description
	}
	if req.Unit != nil {
		ing.Unit = *req.Unit
	}
	if req.MinStockLevel != nil {
		if req.MinStockLevel.IsNegative() {
			return nil, newError(ErrValidation, "min_stock_level must not be negative")
		}
		ing.MinStockLevel = *req.MinStockLevel
	}
	if req.ReorderLevel != nil {
		if req.ReorderLevel.IsNegative() {
			return nil, newError(ErrValidation, "reorder_level must not be negative")
		}
		ing.ReorderLevel = *req.ReorderLevel
	}
	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, translate(err, "ingredient")
	}
	// Reload so the response carries the committed stock
	ing, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "ingredient")
	}
	resp := ingredientToResponse(*ing, 0)
	return &resp, nil
}

func (s *inventoryService) DeleteIngredient(ctx context.Context, id uint) error {
	return translate(s.repo.Delete(ctx, id), "ingredient")
}

// RecordMovement inserts the movement and applies its signed quantity to the
// ingredient's stock in one transaction.
func (s *inventoryService) RecordMovement(ctx context.Context, req dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	if req.Quantity.IsZero() {
		return nil, newError(ErrValidation, "quantity must not be zero")
	}

	var (
		mov   *model.StockMovement
		after *model.Ingredient
	)
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ing, err := s.repo.FindByIDTx(tx, req.IngredientID)
		if err != nil {
			return err
		}
		mov = &model.StockMovement{
			IngredientID: ing.ID,
			Quantity:     req.Quantity,
			MovementType: req.MovementType,
			ReferenceID:  req.ReferenceID,
			Notes:        req.Notes,
		}
		if err := s.repo.CreateMovementTx(tx, mov); err != nil {
			return err
		}
		if err := s.repo.ApplyDeltaTx(tx, ing.ID, req.Quantity); err != nil {
			return err
		}
		after, err = s.repo.FindByIDTx(tx, ing.ID)
		return err
	})
	if err != nil {
		return nil, translate(err, "ingredient")
	}

	mov.Ingredient = after
	resp := movementToResponse(*mov, 0)
	resp.StockAfter = &after.CurrentStock

	evt := log.Info()
	if after.IsLowStock() {
		evt = log.Warn().Bool("low_stock", true)
	}
	evt.Uint("ingredient_id", after.ID).
		Str("movement_type", mov.MovementType).
		Str("quantity", mov.Quantity.String()).
		Str("stock_after", after.CurrentStock.String()).
		Msg("stock movement recorded")

	return &resp, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.StockMovementResponse, error) {
	list, err := s.repo.ListMovements(ctx, repository.MovementFilter{
		IngredientID: filter.IngredientID,
		MovementType: filter.MovementType,
		Skip:         filter.Skip,
		Limit:        filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(list, movementToResponse), nil
}

func (s *inventoryService) ExportMovements(ctx context.Context, filter dto.MovementFilter) ([]byte, error) {
	movements, err := s.ListMovements(ctx, filter)
	if err != nil {
		return nil, err
	}
	return infra.WriteMovementsXLSX(movements)
}

func (s *inventoryService) LowStock(ctx context.Context) ([]dto.IngredientResponse, error) {
	list, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, ingredientToResponse), nil
}

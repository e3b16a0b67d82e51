package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const menuItemCacheTTL = 10 * time.Minute

// MenuService defines business operations for menu categories and items.
type MenuService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, skip, limit int) ([]dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id uint) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uint, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uint) error

	CreateItem(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error)
	ListItems(ctx context.Context, filter dto.MenuItemFilter) ([]dto.MenuItemResponse, error)
	GetItem(ctx context.Context, id uint) (*dto.MenuItemResponse, error)
	UpdateItem(ctx context.Context, id uint, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	DeleteItem(ctx context.Context, id uint) error
}

type menuService struct {
	categories repository.CategoryRepository
	items      repository.MenuItemRepository
	rdb        *redis.Client // nil disables the item cache
}

func NewMenuService(categories repository.CategoryRepository, items repository.MenuItemRepository, rdb *redis.Client) MenuService {
	return &menuService{categories: categories, items: items, rdb: rdb}
}

// ── Categories ───────────────────────────────────────────────────────────────

func (s *menuService) ensureCategoryNameFree(ctx context.Context, name string, exceptID uint) error {
	existing, err := s.categories.FindByName(ctx, name)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return newError(ErrConflict, "a category named %q already exists", name)
	}
	return nil
}

func (s *menuService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := s.ensureCategoryNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}
	c := &model.MenuCategory{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, translate(err, "category")
	}
	resp := categoryToResponse(*c, 0)
	return &resp, nil
}

func (s *menuService) ListCategories(ctx context.Context, skip, limit int) ([]dto.CategoryResponse, error) {
	list, err := s.categories.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, categoryToResponse), nil
}

func (s *menuService) GetCategory(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "category")
	}
	resp := categoryToResponse(*c, 0)
	return &resp, nil
}

func (s *menuService) UpdateCategory(ctx context.Context, id uint, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "category")
	}
	if req.Name != nil && *req.Name != c.Name {
		if err := s.ensureCategoryNameFree(ctx, *req.Name, id); err != nil {
			return nil, err
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.ImageURL != nil {
		c.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, translate(err, "category")
	}
	resp := categoryToResponse(*c, 0)
	return &resp, nil
}

func (s *menuService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return translate(err, "category")
	}
	n, err := s.categories.CountItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return newError(ErrConflict, "category still has %d menu items", n)
	}
	return translate(s.categories.Delete(ctx, id), "category")
}

// ── Items ────────────────────────────────────────────────────────────────────

func (s *menuService) CreateItem(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		return nil, translate(err, "category")
	}
	m := &model.MenuItem{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Cost:            req.Cost,
		IsAvailable:     req.IsAvailable == nil || *req.IsAvailable,
		ImageURL:        req.ImageURL,
		PreparationTime: req.PreparationTime,
		CategoryID:      req.CategoryID,
	}
	if err := s.items.Create(ctx, m); err != nil {
		return nil, translate(err, "menu item")
	}
	resp := menuItemToResponse(*m, 0)
	return &resp, nil
}

func (s *menuService) ListItems(ctx context.Context, filter dto.MenuItemFilter) ([]dto.MenuItemResponse, error) {
	list, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, menuItemToResponse), nil
}

func itemCacheKey(id uint) string { return fmt.Sprintf("menu_item:%d", id) }

func (s *menuService) GetItem(ctx context.Context, id uint) (*dto.MenuItemResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, itemCacheKey(id)).Bytes(); err == nil {
			var resp dto.MenuItemResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	m, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "menu item")
	}
	resp := menuItemToResponse(*m, 0)

	// Populate cache, best effort
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, itemCacheKey(id), b, menuItemCacheTTL).Err()
		}
	}
	return &resp, nil
}

func (s *menuService) invalidateItem(ctx context.Context, id uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, itemCacheKey(id)).Err(); err != nil {
		log.Warn().Err(err).Uint("menu_item_id", id).Msg("menu cache invalidation failed")
	}
}

func (s *menuService) UpdateItem(ctx context.Context, id uint, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	m, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "menu item")
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, newError(ErrValidation, "price must be greater than zero")
		}
		m.Price = *req.Price
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, newError(ErrValidation, "cost must not be negative")
		}
		m.Cost = *req.Cost
	}
	if req.IsAvailable != nil {
		m.IsAvailable = *req.IsAvailable
	}
	if req.ImageURL != nil {
		m.ImageURL = *req.ImageURL
	}
	if req.PreparationTime != nil {
		m.PreparationTime = *req.PreparationTime
	}
	if req.CategoryID != nil && *req.CategoryID != m.CategoryID {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, translate(err, "category")
		}
		m.CategoryID = *req.CategoryID
		m.Category = nil
	}
	if err := s.items.Update(ctx, m); err != nil {
		return nil, translate(err, "menu item")
	}
	s.invalidateItem(ctx, id)
	resp := menuItemToResponse(*m, 0)
	return &resp, nil
}

func (s *menuService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return translate(err, "menu item")
	}
	s.invalidateItem(ctx, id)
	return nil
}

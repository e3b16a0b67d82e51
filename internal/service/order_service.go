package service

import (
	"context"
	"fmt"
	"strings"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	orderStatuses = []string{
		model.OrderPending, model.OrderConfirmed, model.OrderPreparing, model.OrderReady,
		model.OrderServed, model.OrderCompleted, model.OrderCancelled,
	}
	itemStatuses = []string{
		model.ItemPending, model.ItemPreparing, model.ItemReady, model.ItemServed, model.ItemCancelled,
	}
)

type OrderService interface {
	// Create places an order; waiterID is the authenticated user, nil when unknown.
	Create(ctx context.Context, waiterID *uint, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, id uint) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error)
	// UpdateStatus accepts any transition between known statuses.
	UpdateStatus(ctx context.Context, id uint, status string) (*dto.OrderResponse, error)
	UpdateItemStatus(ctx context.Context, orderID, itemID uint, status string) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id uint) error
}

type orderService struct {
	orders  repository.OrderRepository
	menu    repository.MenuItemRepository
	tables  repository.TableRepository
	taxRate decimal.Decimal
}

func NewOrderService(
	orders repository.OrderRepository,
	menu repository.MenuItemRepository,
	tables repository.TableRepository,
	taxRate decimal.Decimal,
) OrderService {
	return &orderService{orders: orders, menu: menu, tables: tables, taxRate: taxRate}
}

// newOrderNumber returns "ORD-" followed by 8 uppercase hex characters.
func newOrderNumber() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(token[:8])
}

func (s *orderService) Create(ctx context.Context, waiterID *uint, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if req.TableID != nil {
		if _, err := s.tables.FindByID(ctx, *req.TableID); err != nil {
			return nil, translate(err, "table")
		}
	}

	// Resolve every menu item up front so the transaction only writes
	ids := lo.Uniq(lo.Map(req.Items, func(it dto.OrderItemRequest, _ int) uint { return it.MenuItemID }))
	found, err := s.menu.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(found, func(m model.MenuItem) uint { return m.ID })

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		mi, ok := byID[it.MenuItemID]
		if !ok {
			return nil, newError(ErrNotFound, "menu item %d not found", it.MenuItemID)
		}
		if !mi.IsAvailable {
			return nil, newError(ErrValidation, "menu item %q is not available", mi.Name)
		}
		items = append(items, model.OrderItem{
			MenuItemID: mi.ID,
			Quantity:   it.Quantity,
			UnitPrice:  mi.Price,
			Status:     model.ItemPending,
			Notes:      it.Notes,
		})
	}

	order := &model.Order{
		OrderNumber: newOrderNumber(),
		Status:      model.OrderPending,
		OrderType:   req.OrderType,
		TableID:     req.TableID,
		WaiterID:    waiterID,
		Notes:       req.Notes,
		Items:       items,
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		return s.orders.CreateTx(tx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", translate(err, "order"))
	}

	log.Info().
		Str("order_number", order.OrderNumber).
		Int("items", len(order.Items)).
		Msg("order created")

	// Attach menu items for the response without another round trip
	for i := range order.Items {
		mi := byID[order.Items[i].MenuItemID]
		order.Items[i].MenuItem = &mi
	}
	resp := orderToResponse(order, s.taxRate)
	return &resp, nil
}

func (s *orderService) Get(ctx context.Context, id uint) (*dto.OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "order")
	}
	resp := orderToResponse(o, s.taxRate)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(orders, func(o model.Order, _ int) dto.OrderResponse {
		return orderToResponse(&o, s.taxRate)
	}), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uint, status string) (*dto.OrderResponse, error) {
	if !lo.Contains(orderStatuses, status) {
		return nil, newError(ErrValidation, "invalid order status %q", status)
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, translate(err, "order")
	}
	return s.Get(ctx, id)
}

func (s *orderService) UpdateItemStatus(ctx context.Context, orderID, itemID uint, status string) (*dto.OrderResponse, error) {
	if !lo.Contains(itemStatuses, status) {
		return nil, newError(ErrValidation, "invalid item status %q", status)
	}
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, translate(err, "order")
	}
	if err := s.orders.UpdateItemStatus(ctx, orderID, itemID, status); err != nil {
		return nil, translate(err, "order item")
	}
	return s.Get(ctx, orderID)
}

func (s *orderService) Delete(ctx context.Context, id uint) error {
	return translate(s.orders.Delete(ctx, id), "order")
}

package service_test

import (
	"context"
	"testing"
	"time"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"
	"tavola/internal/service"
	"tavola/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCategories(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewMenuService(repository.NewCategoryRepository(db), repository.NewMenuItemRepository(db), nil)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Desserts"})
	require.NoError(t, err)
	assert.True(t, cat.IsActive)

	_, err = svc.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "desserts"})
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = svc.CreateItem(ctx, dto.CreateMenuItemRequest{Name: "Tiramisu", Price: decimal.NewFromInt(6), CategoryID: 999})
	assert.ErrorIs(t, err, service.ErrNotFound)

	item, err := svc.CreateItem(ctx, dto.CreateMenuItemRequest{Name: "Tiramisu", Price: decimal.NewFromInt(6), CategoryID: cat.ID})
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)

	got, err := svc.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)

	// A category that still lists items cannot be removed
	assert.ErrorIs(t, svc.DeleteCategory(ctx, cat.ID), service.ErrConflict)

	off := false
	upd, err := svc.UpdateItem(ctx, item.ID, dto.UpdateMenuItemRequest{IsAvailable: &off})
	require.NoError(t, err)
	assert.False(t, upd.IsAvailable)

	avail := true
	list, err := svc.ListItems(ctx, dto.MenuItemFilter{Available: &avail})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	_, err = svc.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteItem(ctx, item.ID), service.ErrNotFound)
	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))
}

func TestTables(t *testing.T) {
	svc := service.NewTableService(repository.NewTableRepository(testutil.NewDB(t)))
	ctx := context.Background()

	tbl, err := svc.Create(ctx, dto.CreateTableRequest{TableNumber: "T1", Capacity: 4})
	require.NoError(t, err)
	assert.Equal(t, model.TableAvailable, tbl.Status)

	_, err = svc.Create(ctx, dto.CreateTableRequest{TableNumber: "T1", Capacity: 2})
	assert.ErrorIs(t, err, service.ErrConflict)

	status := model.TableOccupied
	got, err := svc.Update(ctx, tbl.ID, dto.UpdateTableRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.TableOccupied, got.Status)

	require.NoError(t, svc.Delete(ctx, tbl.ID))
	_, err = svc.Get(ctx, tbl.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, tbl.ID), service.ErrNotFound)
}

func TestReservations(t *testing.T) {
	db := testutil.NewDB(t)
	tables := repository.NewTableRepository(db)
	svc := service.NewReservationService(repository.NewReservationRepository(db), tables)
	ctx := context.Background()
	at := time.Date(2026, 12, 24, 20, 0, 0, 0, time.UTC)

	missing := uint(999)
	_, err := svc.Create(ctx, dto.CreateReservationRequest{
		CustomerName: "Rossi", CustomerPhone: "555-0100", ReservationTime: at, PartySize: 4, TableID: &missing,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	table := &model.Table{TableNumber: "T9", Capacity: 6, Status: model.TableAvailable}
	require.NoError(t, tables.Create(ctx, table))

	r, err := svc.Create(ctx, dto.CreateReservationRequest{
		CustomerName: "Rossi", CustomerPhone: "555-0100", ReservationTime: at, PartySize: 4, TableID: &table.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReservationConfirmed, r.Status)

	size := 6
	r, err = svc.Update(ctx, r.ID, dto.UpdateReservationRequest{PartySize: &size})
	require.NoError(t, err)
	assert.Equal(t, 6, r.PartySize)

	r, err = svc.UpdateStatus(ctx, r.ID, model.ReservationSeated)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationSeated, r.Status)

	seated, err := svc.List(ctx, dto.ReservationFilter{Status: model.ReservationSeated})
	require.NoError(t, err)
	assert.Len(t, seated, 1)

	require.NoError(t, svc.Delete(ctx, r.ID))
	assert.ErrorIs(t, svc.Delete(ctx, r.ID), service.ErrNotFound)
}

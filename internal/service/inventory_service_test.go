package service_test

import (
	"bytes"
	"context"
	"testing"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"
	"tavola/internal/service"
	"tavola/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newInventory(t *testing.T) service.InventoryService {
	t.Helper()
	return service.NewInventoryService(repository.NewIngredientRepository(testutil.NewDB(t)))
}

func TestInventory_ConsumptionTriggersLowStock(t *testing.T) {
	svc := newInventory(t)
	ctx := context.Background()

	flour, err := svc.CreateIngredient(ctx, dto.CreateIngredientRequest{
		Name: "Flour", Unit: "kg", CurrentStock: dec("10"), ReorderLevel: dec("5"),
	})
	require.NoError(t, err)
	assert.False(t, flour.LowStock)

	mov, err := svc.RecordMovement(ctx, dto.StockMovementRequest{
		IngredientID: flour.ID, Quantity: dec("-8"), MovementType: model.MovementConsumption,
	})
	require.NoError(t, err)
	require.NotNil(t, mov.StockAfter)
	assert.True(t, mov.StockAfter.Equal(dec("2")), mov.StockAfter.String())

	got, err := svc.GetIngredient(ctx, flour.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(dec("2")))
	assert.True(t, got.LowStock)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Flour", low[0].Name)
}

func TestInventory_ReorderBoundaryIsLowStock(t *testing.T) {
	svc := newInventory(t)
	ctx := context.Background()

	_, err := svc.CreateIngredient(ctx, dto.CreateIngredientRequest{
		Name: "Salt", Unit: "kg", CurrentStock: dec("5"), ReorderLevel: dec("5"),
	})
	require.NoError(t, err)
	_, err = svc.CreateIngredient(ctx, dto.CreateIngredientRequest{
		Name: "Rice", Unit: "kg", CurrentStock: dec("6"), ReorderLevel: dec("5"),
	})
	require.NoError(t, err)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Salt", low[0].Name)
}

func TestInventory_Rejections(t *testing.T) {
	svc := newInventory(t)
	ctx := context.Background()

	ing, err := svc.CreateIngredient(ctx, dto.CreateIngredientRequest{Name: "Oil", Unit: "l"})
	require.NoError(t, err)

	_, err = svc.CreateIngredient(ctx, dto.CreateIngredientRequest{Name: "Oil", Unit: "l"})
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = svc.RecordMovement(ctx, dto.StockMovementRequest{
		IngredientID: ing.ID, Quantity: decimal.Zero, MovementType: model.MovementAdjustment,
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.RecordMovement(ctx, dto.StockMovementRequest{
		IngredientID: 999, Quantity: dec("1"), MovementType: model.MovementPurchase,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	neg := dec("-1")
	_, err = svc.UpdateIngredient(ctx, ing.ID, dto.UpdateIngredientRequest{ReorderLevel: &neg})
	assert.ErrorIs(t, err, service.ErrValidation)

	require.NoError(t, svc.DeleteIngredient(ctx, ing.ID))
	assert.ErrorIs(t, svc.DeleteIngredient(ctx, ing.ID), service.ErrNotFound)
}

func TestInventory_MovementsAndExport(t *testing.T) {
	svc := newInventory(t)
	ctx := context.Background()

	ing, err := svc.CreateIngredient(ctx, dto.CreateIngredientRequest{Name: "Butter", Unit: "kg"})
	require.NoError(t, err)
	for _, q := range []string{"4", "-1.5"} {
		typ := model.MovementPurchase
		if q[0] == '-' {
			typ = model.MovementWaste
		}
		_, err := svc.RecordMovement(ctx, dto.StockMovementRequest{
			IngredientID: ing.ID, Quantity: dec(q), MovementType: typ,
		})
		require.NoError(t, err)
	}

	all, err := svc.ListMovements(ctx, dto.MovementFilter{IngredientID: &ing.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	waste, err := svc.ListMovements(ctx, dto.MovementFilter{MovementType: model.MovementWaste})
	require.NoError(t, err)
	require.Len(t, waste, 1)
	assert.Equal(t, "Butter", waste[0].IngredientName)

	got, err := svc.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(dec("2.5")), got.CurrentStock.String())

	b, err := svc.ExportMovements(ctx, dto.MovementFilter{})
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Movements")
	require.NoError(t, err)
	assert.Len(t, rows, 3) // header + 2 movements
}

func TestInventory_UpdateKeepsStockFromMovements(t *testing.T) {
	repo := repository.NewIngredientRepository(testutil.NewDB(t))
	svc := service.NewInventoryService(repo)
	ctx := context.Background()

	ing, err := svc.CreateIngredient(ctx, dto.CreateIngredientRequest{
		Name: "Sugar", Unit: "kg", CurrentStock: dec("10"), ReorderLevel: dec("1"),
	})
	require.NoError(t, err)

	// A copy read before the movement commits must not put the old stock back
	stale, err := repo.FindByID(ctx, ing.ID)
	require.NoError(t, err)

	_, err = svc.RecordMovement(ctx, dto.StockMovementRequest{
		IngredientID: ing.ID, Quantity: dec("-8"), MovementType: model.MovementConsumption,
	})
	require.NoError(t, err)

	stale.Description = "caster sugar"
	require.NoError(t, repo.Update(ctx, stale))

	got, err := svc.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(dec("2")), got.CurrentStock.String())
	assert.Equal(t, "caster sugar", got.Description)

	desc := "fine"
	upd, err := svc.UpdateIngredient(ctx, ing.ID, dto.UpdateIngredientRequest{Description: &desc})
	require.NoError(t, err)
	assert.True(t, upd.CurrentStock.Equal(dec("2")), upd.CurrentStock.String())

	missing := &model.Ingredient{ID: 999, Name: "Ghost", Unit: "kg"}
	assert.ErrorIs(t, repo.Update(ctx, missing), gorm.ErrRecordNotFound)
}

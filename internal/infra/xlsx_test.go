package infra

import (
	"bytes"
	"testing"
	"time"

	"tavola/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteMovementsXLSX(t *testing.T) {
	ref := uint(7)
	b, err := WriteMovementsXLSX([]dto.StockMovementResponse{
		{ID: 1, IngredientID: 3, IngredientName: "Flour", Quantity: decimal.NewFromInt(10), MovementType: "purchase", CreatedAt: time.Now()},
		{ID: 2, IngredientID: 3, IngredientName: "Flour", Quantity: decimal.NewFromInt(-8), MovementType: "consumption", ReferenceID: &ref, Notes: "dinner service", CreatedAt: time.Now()},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Movements")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ingredient", rows[0][3])
	assert.Equal(t, "consumption", rows[2][4])
	assert.Equal(t, "-8", rows[2][5])
	assert.Equal(t, "7", rows[2][6])
	assert.Equal(t, "dinner service", rows[2][7])
}

func TestWriteMovementsXLSX_Empty(t *testing.T) {
	b, err := WriteMovementsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Movements")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

package infra

import (
	"bytes"
	"fmt"

	"tavola/internal/dto"

	"github.com/xuri/excelize/v2"
)

const movementsSheet = "Movements"

var movementHeader = []interface{}{
	"ID", "Date", "Ingredient ID", "Ingredient", "Type", "Quantity", "Reference", "Notes",
}

// WriteMovementsXLSX renders stock movements as a single-sheet workbook.
func WriteMovementsXLSX(movements []dto.StockMovementResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", movementsSheet); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(movementsSheet, "A1", &movementHeader); err != nil {
		return nil, fmt.Errorf("xlsx: header: %w", err)
	}

	for i, m := range movements {
		ref := ""
		if m.ReferenceID != nil {
			ref = fmt.Sprintf("%d", *m.ReferenceID)
		}
		qty, _ := m.Quantity.Float64()
		row := []interface{}{
			m.ID,
			m.CreatedAt.Format("2006-01-02 15:04:05"),
			m.IngredientID,
			m.IngredientName,
			m.MovementType,
			qty,
			ref,
			m.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(movementsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

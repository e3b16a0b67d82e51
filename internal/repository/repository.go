package repository

import (
	"context"

	"gorm.io/gorm"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// page clamps skip/limit to sane bounds.
func page(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return skip, limit
}

// deleteByID hard-deletes one row and reports gorm.ErrRecordNotFound when
// nothing matched, so callers never mistake a missing id for success.
func deleteByID(ctx context.Context, db *gorm.DB, value interface{}, id uint) error {
	res := db.WithContext(ctx).Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Package testutil holds fixtures shared by package tests. Only _test files
// import it, so the SQLite driver never reaches the server binary.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"tavola/internal/infra"
	"tavola/internal/model"
	"tavola/internal/repository"
	"tavola/internal/service"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a migrated SQLite database in the test's temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "tavola.db")
	db, err := gorm.Open(sqlite.Open(dsn), infra.GormConfig(false))
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Seed runs the startup seeder with an admin account "admin" / password.
func Seed(t testing.TB, db *gorm.DB, password string) {
	t.Helper()
	seeder := service.NewSeeder(
		repository.NewRoleRepository(db),
		repository.NewPermissionRepository(db),
		repository.NewUserRepository(db),
	)
	require.NoError(t, seeder.Run(context.Background(), service.AdminAccount{
		Username: "admin",
		Email:    "admin@tavola.test",
		Password: password,
	}))
}

// RoleID returns the id of a seeded role.
func RoleID(t testing.TB, db *gorm.DB, name string) uint {
	t.Helper()
	var role model.Role
	require.NoError(t, db.Where("name = ?", name).First(&role).Error)
	return role.ID
}

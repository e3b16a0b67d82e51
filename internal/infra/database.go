package infra

import (
	"fmt"

	"tavola/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection to Postgres and creates or updates the
// schema from the model structs. debugSQL switches the GORM logger from silent
// to Info.
func NewDatabase(dsn string, debugSQL bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), GormConfig(debugSQL))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// GormConfig is shared by the server and the SQLite-backed tests so both see
// gorm.ErrDuplicatedKey on unique violations.
func GormConfig(debugSQL bool) *gorm.Config {
	level := logger.Silent
	if debugSQL {
		level = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}

// Migrate registers the explicit role/permission join table and runs
// AutoMigrate for every entity. Safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Role{}, "Permissions", &model.RolePermission{}); err != nil {
		return fmt.Errorf("setup join table: %w", err)
	}
	if err := db.AutoMigrate(
		&model.Permission{},
		&model.Role{},
		&model.RolePermission{},
		&model.User{},
		&model.MenuCategory{},
		&model.MenuItem{},
		&model.Ingredient{},
		&model.StockMovement{},
		&model.Table{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Reservation{},
		&model.Employee{},
		&model.Attendance{},
		&model.Leave{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}

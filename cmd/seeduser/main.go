// seeduser creates the admin account, or resets its password and
// re-activates it when it already exists. Also seeds permissions and roles.
// Usage: ADMIN_PASSWORD=... go run ./cmd/seeduser
package main

import (
	"context"
	"fmt"
	"os"

	"tavola/internal/config"
	"tavola/internal/dto"
	"tavola/internal/infra"
	"tavola/internal/model"
	"tavola/internal/repository"
	"tavola/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.AdminPassword == "" {
		log.Fatal().Msg("ADMIN_PASSWORD must be set")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permRepo := repository.NewPermissionRepository(db)

	admin := service.AdminAccount{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}
	if err := service.NewSeeder(roleRepo, permRepo, userRepo).Run(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	// Seeder leaves an existing account untouched; force the configured state
	user, err := userRepo.FindByUsername(ctx, admin.Username)
	if err != nil {
		log.Fatal().Err(err).Msg("admin lookup failed")
	}
	role, err := roleRepo.FindByName(ctx, model.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("admin role lookup failed")
	}
	active := true
	_, err = service.NewUserService(userRepo, roleRepo).Update(ctx, user.ID, dto.UpdateUserRequest{
		Password: &admin.Password,
		IsActive: &active,
		RoleID:   &role.ID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("admin update failed")
	}

	fmt.Printf("admin user %q ready\n", admin.Username)
}

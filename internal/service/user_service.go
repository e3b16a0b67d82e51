package service

import (
	"context"
	"strings"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/samber/lo"
)

// UserService is the admin-side user management.
type UserService interface {
	List(ctx context.Context, skip, limit int) ([]dto.UserResponse, error)
	Get(ctx context.Context, id uint) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

func NewUserService(users repository.UserRepository, roles repository.RoleRepository) UserService {
	return &userService{users: users, roles: roles}
}

func (s *userService) List(ctx context.Context, skip, limit int) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u model.User, _ int) dto.UserResponse { return userToResponse(&u) }), nil
}

func (s *userService) Get(ctx context.Context, id uint) (*dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "user")
	}
	resp := userToResponse(u)
	return &resp, nil
}

func (s *userService) checkRole(ctx context.Context, roleID *uint) (*model.Role, error) {
	if roleID == nil {
		return nil, nil
	}
	role, err := s.roles.FindByID(ctx, *roleID)
	if err != nil {
		return nil, translate(err, "role")
	}
	return role, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(req.Email)
	if err := ensureUnique(ctx, s.users, req.Username, email, 0); err != nil {
		return nil, err
	}
	role, err := s.checkRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     req.Username,
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: hash,
		IsActive:     req.IsActive == nil || *req.IsActive,
		RoleID:       req.RoleID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, translate(err, "user")
	}
	u.Role = role
	resp := userToResponse(u)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "user")
	}

	username, email := "", ""
	if req.Username != nil && *req.Username != u.Username {
		username = *req.Username
	}
	if req.Email != nil && !strings.EqualFold(*req.Email, u.Email) {
		email = strings.TrimSpace(*req.Email)
	}
	if err := ensureUnique(ctx, s.users, username, email, u.ID); err != nil {
		return nil, err
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = strings.TrimSpace(*req.Email)
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.RoleID != nil {
		role, err := s.checkRole(ctx, req.RoleID)
		if err != nil {
			return nil, err
		}
		u.RoleID = req.RoleID
		u.Role = role
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, translate(err, "user")
	}
	resp := userToResponse(u)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	return translate(s.users.Delete(ctx, id), "user")
}

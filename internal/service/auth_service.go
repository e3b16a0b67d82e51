package service

import (
	"context"
	"strings"
	"time"

	"tavola/internal/config"
	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, token string) (*dto.LoginResponse, error)
	Me(ctx context.Context, username string) (*dto.UserResponse, error)
	// HasPermission returns ErrInvalidToken when the user is gone or inactive.
	HasPermission(ctx context.Context, username, permission string) (bool, error)
}

type authService struct {
	users repository.UserRepository
	roles repository.RoleRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, cfg *config.Config) AuthService {
	return &authService{users: users, roles: roles, cfg: cfg}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ensureUnique rejects a username or email already taken by another user.
// exceptID is the user being updated, 0 on create.
func ensureUnique(ctx context.Context, users repository.UserRepository, username, email string, exceptID uint) error {
	if username != "" {
		existing, err := users.FindByUsername(ctx, username)
		if err != nil && !isNotFound(err) {
			return err
		}
		if existing != nil && existing.ID != exceptID {
			return newError(ErrConflict, "username already registered")
		}
	}
	if email != "" {
		existing, err := users.FindByEmail(ctx, email)
		if err != nil && !isNotFound(err) {
			return err
		}
		if existing != nil && existing.ID != exceptID {
			return newError(ErrConflict, "email already registered")
		}
	}
	return nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(req.Email)
	if err := ensureUnique(ctx, s.users, req.Username, email, 0); err != nil {
		return nil, err
	}

	role, err := s.staffRole(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     req.Username,
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: hash,
		IsActive:     true,
		RoleID:       &role.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, translate(err, "user")
	}
	user.Role = role
	resp := userToResponse(user)
	return &resp, nil
}

// staffRole returns the default role for self-registered users, creating it if missing.
func (s *authService) staffRole(ctx context.Context) (*model.Role, error) {
	role, err := s.roles.FindByName(ctx, model.RoleStaff)
	if err == nil {
		return role, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	role = &model.Role{Name: model.RoleStaff, Description: "Default role for registered staff"}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil || user == nil || !user.IsActive {
		return nil, newError(ErrInvalidCredentials, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, newError(ErrInvalidCredentials, "invalid credentials")
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now
	return s.issue(user)
}

func (s *authService) Refresh(ctx context.Context, token string) (*dto.LoginResponse, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, newError(ErrInvalidToken, "invalid or expired token")
	}
	username, err := claims.GetSubject()
	if err != nil || username == "" {
		return nil, newError(ErrInvalidToken, "malformed token")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil || !user.IsActive {
		return nil, newError(ErrInvalidToken, "user not found or inactive")
	}
	return s.issue(user)
}

func (s *authService) Me(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, translate(err, "user")
	}
	resp := userToResponse(user)
	return &resp, nil
}

func (s *authService) HasPermission(ctx context.Context, username, permission string) (bool, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return false, newError(ErrInvalidToken, "user no longer exists")
		}
		return false, err
	}
	if !user.IsActive {
		return false, newError(ErrInvalidToken, "user is inactive")
	}
	return s.users.HasPermission(ctx, username, permission)
}

func (s *authService) issue(user *model.User) (*dto.LoginResponse, error) {
	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := s.generateToken(user, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
		User:        userToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.User, duration time.Duration) (string, error) {
	role := ""
	if user.Role != nil {
		role = user.Role.Name
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.Username,
		"user_id": user.ID,
		"role":    role,
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

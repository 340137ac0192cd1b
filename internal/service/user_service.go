package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"
	"catalog-service/pkg/auth"
)

// UserService управляет учетными записями. Хеш пароля наружу не отдается (json:"-").
type UserService struct {
	users  store.UserStore
	logger *slog.Logger
}

func NewUserService(users store.UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create создает пользователя. Роль по умолчанию customer.
func (s *UserService) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	role := auth.RoleCustomer
	if req.Role != nil {
		if !auth.IsValidRole(*req.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *req.Role)
		}
		role = *req.Role
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError("user", err)
	}
	s.logger.InfoContext(ctx, "User created", slog.String("userID", user.ID), slog.String("role", user.Role))
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError("user", err)
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("user", err)
	}
	return user, nil
}

// Update применяет переданные поля. Менять роль может только администратор (actorRole).
func (s *UserService) Update(ctx context.Context, actorRole, id string, req domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("user", err)
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.Role != nil && *req.Role != user.Role {
		if actorRole != auth.RoleAdmin {
			return nil, fmt.Errorf("%w: only admins can change roles", ErrForbidden)
		}
		if !auth.IsValidRole(*req.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeError("user", err)
	}
	s.logger.InfoContext(ctx, "User updated", slog.String("userID", user.ID))
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return storeError("user", err)
	}
	s.logger.InfoContext(ctx, "User deleted", slog.String("userID", id))
	return nil
}

// EnsureAdmin создает администратора при старте, если пользователя с таким email еще нет.
// Существующая запись не меняется.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, bool, error) {
	if email == "" || password == "" {
		return nil, false, fmt.Errorf("%w: admin email and password are required", ErrValidation)
	}
	existing, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err == nil {
		if existing.Role != auth.RoleAdmin {
			s.logger.WarnContext(ctx, "Seed admin email belongs to a non-admin account", slog.String("userID", existing.ID))
		}
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}
	role := auth.RoleAdmin
	user, err := s.Create(ctx, domain.CreateUserRequest{Email: email, Password: password, Role: &role})
	if err != nil {
		return nil, false, err
	}
	s.logger.InfoContext(ctx, "Admin user seeded", slog.String("userID", user.ID), slog.String("email", user.Email))
	return user, true, nil
}

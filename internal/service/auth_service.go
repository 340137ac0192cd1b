package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"catalog-service/internal/domain"
	"catalog-service/internal/notify"
	"catalog-service/internal/store"
	"catalog-service/pkg/auth"
)

// AdminTokenSubject - subject служебного токена администратора в приветствии.
const AdminTokenSubject = "system"

// WelcomeOptions управляет содержимым приветствия при регистрации.
type WelcomeOptions struct {
	IncludeAdminToken bool
	AdminTokenTTL     time.Duration
}

type AuthService struct {
	users    *UserService
	store    store.UserStore
	tokens   auth.TokenManager
	notifier notify.Notifier
	welcome  WelcomeOptions
	logger   *slog.Logger
}

func NewAuthService(users *UserService, userStore store.UserStore, tokens auth.TokenManager, notifier notify.Notifier, welcome WelcomeOptions, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, store: userStore, tokens: tokens, notifier: notifier, welcome: welcome, logger: logger}
}

// Login проверяет пароль и выдает токен с sub = ID пользователя.
// Неизвестный email дает ErrNotFound, неверный пароль - ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.store.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.WarnContext(ctx, "Login attempt for non-existent email", slog.String("email", req.Email))
		}
		return nil, storeError("user", err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.logger.WarnContext(ctx, "Invalid password attempt", slog.String("userID", user.ID))
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.logger.InfoContext(ctx, "User logged in", slog.String("userID", user.ID))
	return &domain.LoginResponse{User: user, Token: token}, nil
}

// Register создает customer, выдает токен и пытается отправить приветствие.
// Сбой отправки не отменяет регистрацию, а только дает WelcomeSent = false.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	role := auth.RoleCustomer
	user, err := s.users.Create(ctx, domain.CreateUserRequest{Email: req.Email, Password: req.Password, Role: &role})
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	resp := &domain.RegisterResponse{User: user, Token: token}
	resp.WelcomeSent = s.sendWelcome(ctx, user, token)
	return resp, nil
}

func (s *AuthService) sendWelcome(ctx context.Context, user *domain.User, token string) bool {
	if s.notifier == nil {
		return false
	}
	msg := notify.WelcomeMessage{UserID: user.ID, Email: user.Email, Token: token, SentAt: time.Now().UTC()}
	if s.welcome.IncludeAdminToken {
		adminToken, err := s.tokens.GenerateWithTTL(AdminTokenSubject, auth.RoleAdmin, s.welcome.AdminTokenTTL)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to generate admin token for welcome message", slog.String("error", err.Error()))
			return false
		}
		msg.AdminToken = adminToken
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "Welcome notification failed", slog.String("userID", user.ID), slog.String("error", err.Error()))
		return false
	}
	return true
}

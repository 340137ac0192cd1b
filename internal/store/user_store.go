// internal/store/user_store.go
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"catalog-service/internal/domain"
)

// UserStore определяет методы для работы с хранилищем пользователей.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// SQLUserStore реализует UserStore поверх sqlx (PostgreSQL или SQLite).
type SQLUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSQLUserStore(db *sqlx.DB, logger *slog.Logger) *SQLUserStore {
	return &SQLUserStore{db: db, logger: logger}
}

const userColumns = `id, email, password, role, created_at, updated_at`

// Create создает нового пользователя. ID заполняет сервис.
func (s *SQLUserStore) Create(ctx context.Context, user *domain.User) error {
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	query := s.db.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)
	s.logger.DebugContext(ctx, "Executing Create user query", slog.String("userID", user.ID), slog.String("email", user.Email))
	_, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		err = translateError("create user", err)
		if isStoreError(err) {
			s.logger.WarnContext(ctx, "User not created", slog.String("email", user.Email), slog.String("reason", err.Error()))
		} else {
			s.logger.ErrorContext(ctx, "Failed to create user in DB", slog.String("error", err.Error()))
		}
		return err
	}
	s.logger.InfoContext(ctx, "User created successfully in DB", slog.String("userID", user.ID))
	return nil
}

func (s *SQLUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	query := s.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		err = translateError("get user by ID", err)
		if !isStoreError(err) {
			s.logger.ErrorContext(ctx, "Failed to get user by ID from DB", slog.String("userID", id), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return &user, nil
}

func (s *SQLUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := s.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)
	if err := s.db.GetContext(ctx, &user, query, email); err != nil {
		err = translateError("get user by email", err)
		if !isStoreError(err) {
			s.logger.ErrorContext(ctx, "Failed to get user by email from DB", slog.String("email", email), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return &user, nil
}

// List возвращает всех пользователей в порядке регистрации.
func (s *SQLUserStore) List(ctx context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, email ASC`
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list users from DB", slog.String("error", err.Error()))
		return nil, translateError("list users", err)
	}
	return users, nil
}

// Update перезаписывает email, хеш пароля и роль.
func (s *SQLUserStore) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := s.db.Rebind(`UPDATE users SET email = ?, password = ?, role = ?, updated_at = ? WHERE id = ?`)
	s.logger.DebugContext(ctx, "Executing Update user query", slog.String("userID", user.ID))
	res, err := s.db.ExecContext(ctx, query, user.Email, user.PasswordHash, user.Role, user.UpdatedAt, user.ID)
	if err != nil {
		err = translateError("update user", err)
		if !isStoreError(err) {
			s.logger.ErrorContext(ctx, "Failed to update user in DB", slog.String("userID", user.ID), slog.String("error", err.Error()))
		}
		return err
	}
	if err := checkAffected("update user", res); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "User updated successfully in DB", slog.String("userID", user.ID))
	return nil
}

func (s *SQLUserStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete user from DB", slog.String("userID", id), slog.String("error", err.Error()))
		return translateError("delete user", err)
	}
	if err := checkAffected("delete user", res); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "User deleted from DB", slog.String("userID", id))
	return nil
}

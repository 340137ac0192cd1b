package store

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"catalog-service/internal/domain"
)

// CategoryStore - хранилище категорий.
type CategoryStore interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

type SQLCategoryStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSQLCategoryStore(db *sqlx.DB, logger *slog.Logger) *SQLCategoryStore {
	return &SQLCategoryStore{db: db, logger: logger}
}

// execer - общее у *sqlx.DB и *sqlx.Tx, чтобы вставку можно было выполнить в транзакции.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
}

func insertCategory(ctx context.Context, ex execer, c *domain.Category) error {
	_, err := ex.ExecContext(ctx, ex.Rebind(`INSERT INTO categories (id, image, name) VALUES (?, ?, ?)`), c.ID, c.Image, c.Name)
	return err
}

func (s *SQLCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := insertCategory(ctx, s.db, category); err != nil {
		err = translateError("create category", err)
		if isStoreError(err) {
			s.logger.WarnContext(ctx, "Category not created", slog.String("name", category.Name), slog.String("reason", err.Error()))
		} else {
			s.logger.ErrorContext(ctx, "Failed to create category in DB", slog.String("error", err.Error()))
		}
		return err
	}
	s.logger.InfoContext(ctx, "Category created in DB", slog.String("categoryID", category.ID))
	return nil
}

func (s *SQLCategoryStore) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if err := s.db.GetContext(ctx, &c, s.db.Rebind(`SELECT id, image, name FROM categories WHERE id = ?`), id); err != nil {
		err = translateError("get category", err)
		if !isStoreError(err) {
			s.logger.ErrorContext(ctx, "Failed to get category from DB", slog.String("categoryID", id), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return &c, nil
}

func (s *SQLCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	categories := []*domain.Category{}
	if err := s.db.SelectContext(ctx, &categories, `SELECT id, image, name FROM categories ORDER BY name ASC`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list categories from DB", slog.String("error", err.Error()))
		return nil, translateError("list categories", err)
	}
	return categories, nil
}

func (s *SQLCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	query := s.db.Rebind(`UPDATE categories SET image = ?, name = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, category.Image, category.Name, category.ID)
	if err != nil {
		err = translateError("update category", err)
		if !isStoreError(err) {
			s.logger.ErrorContext(ctx, "Failed to update category in DB", slog.String("categoryID", category.ID), slog.String("error", err.Error()))
		}
		return err
	}
	return checkAffected("update category", res)
}

// Delete удаляет категорию; у ее фильмов category_id становится NULL (ON DELETE SET NULL).
func (s *SQLCategoryStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM categories WHERE id = ?`), id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete category from DB", slog.String("categoryID", id), slog.String("error", err.Error()))
		return translateError("delete category", err)
	}
	if err := checkAffected("delete category", res); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Category deleted from DB", slog.String("categoryID", id))
	return nil
}

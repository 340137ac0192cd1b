package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"catalog-service/internal/domain"
)

// CharacterStore - хранилище персонажей.
type CharacterStore interface {
	Create(ctx context.Context, character *domain.Character) error
	GetByID(ctx context.Context, id string) (*domain.Character, error)
	List(ctx context.Context, filter domain.CharacterFilter) ([]*domain.Character, error)
	Update(ctx context.Context, character *domain.Character) error
	Delete(ctx context.Context, id string) error
}

type SQLCharacterStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSQLCharacterStore(db *sqlx.DB, logger *slog.Logger) *SQLCharacterStore {
	return &SQLCharacterStore{db: db, logger: logger}
}

const characterColumns = `c.id, c.image, c.name, c.age, c.weight, c.story`

func (s *SQLCharacterStore) Create(ctx context.Context, ch *domain.Character) error {
	query := s.db.Rebind(`INSERT INTO characters (id, image, name, age, weight, story) VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, ch.ID, ch.Image, ch.Name, ch.Age, ch.Weight, ch.Story)
	if err != nil {
		err = translateError("create character", err)
		if isStoreError(err) {
			s.logger.WarnContext(ctx, "Character not created", slog.String("name", ch.Name), slog.String("reason", err.Error()))
		} else {
			s.logger.ErrorContext(ctx, "Failed to create character in DB", slog.String("error", err.Error()))
		}
		return err
	}
	s.logger.InfoContext(ctx, "Character created in DB", slog.String("characterID", ch.ID))
	return nil
}

func (s *SQLCharacterStore) GetByID(ctx context.Context, id string) (*domain.Character, error) {
	var ch domain.Character
	query := s.db.Rebind(`SELECT ` + characterColumns + ` FROM characters c WHERE c.id = ?`)
	if err := s.db.GetContext(ctx, &ch, query, id); err != nil {
		err = translateError("get character", err)
		if !isStoreError(err) {
			s.logger.ErrorContext(ctx, "Failed to get character from DB", slog.String("characterID", id), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return &ch, nil
}

// List возвращает персонажей по фильтрам: подстрока имени без учета регистра,
// точный возраст и связанный фильм.
func (s *SQLCharacterStore) List(ctx context.Context, filter domain.CharacterFilter) ([]*domain.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters c`
	if filter.MovieID != "" {
		query += ` JOIN character_movie cm ON cm.character_id = c.id`
	}
	query += ` WHERE 1=1`

	var conditions []string
	var args []interface{}
	if filter.Name != "" {
		conditions = append(conditions, "LOWER(c.name) LIKE LOWER(?)")
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Age != nil {
		conditions = append(conditions, "c.age = ?")
		args = append(args, *filter.Age)
	}
	if filter.MovieID != "" {
		conditions = append(conditions, "cm.movie_id = ?")
		args = append(args, filter.MovieID)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query = s.db.Rebind(query + " ORDER BY c.name ASC")

	characters := []*domain.Character{}
	s.logger.DebugContext(ctx, "Executing List characters query", slog.String("query", query), slog.Any("args", args))
	if err := s.db.SelectContext(ctx, &characters, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list characters from DB", slog.String("error", err.Error()))
		return nil, translateError("list characters", err)
	}
	return characters, nil
}

func (s *SQLCharacterStore) Update(ctx context.Context, ch *domain.Character) error {
	query := s.db.Rebind(`UPDATE characters SET image = ?, name = ?, age = ?, weight = ?, story = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, ch.Image, ch.Name, ch.Age, ch.Weight, ch.Story, ch.ID)
	if err != nil {
		err = translateError("update character", err)
		if !isStoreError(err) {
			s.logger.ErrorContext(ctx, "Failed to update character in DB", slog.String("characterID", ch.ID), slog.String("error", err.Error()))
		}
		return err
	}
	return checkAffected("update character", res)
}

// Delete удаляет персонажа вместе с его связями character_movie (ON DELETE CASCADE).
func (s *SQLCharacterStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM characters WHERE id = ?`), id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete character from DB", slog.String("characterID", id), slog.String("error", err.Error()))
		return translateError("delete character", err)
	}
	if err := checkAffected("delete character", res); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Character deleted from DB", slog.String("characterID", id))
	return nil
}

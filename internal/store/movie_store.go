// internal/store/movie_store.go
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"catalog-service/internal/domain"
)

// MovieStore - хранилище фильмов и связей персонаж-фильм.
type MovieStore interface {
	Create(ctx context.Context, movie *domain.Movie) error
	// CreateWithCategory создает категорию и фильм в ней одной транзакцией.
	CreateWithCategory(ctx context.Context, movie *domain.Movie, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Movie, error)
	List(ctx context.Context, filter domain.MovieFilter) ([]*domain.Movie, error)
	ListByCharacter(ctx context.Context, characterID string) ([]*domain.Movie, error)
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, id string) error
	AddCharacter(ctx context.Context, link *domain.CharacterMovie) error
}

type SQLMovieStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSQLMovieStore(db *sqlx.DB, logger *slog.Logger) *SQLMovieStore {
	return &SQLMovieStore{db: db, logger: logger}
}

const movieColumns = `m.id, m.image, m.title, m.release_date, m.stars, m.category_id`

func insertMovie(ctx context.Context, ex execer, m *domain.Movie) error {
	query := ex.Rebind(`INSERT INTO movies (id, image, title, release_date, stars, category_id) VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := ex.ExecContext(ctx, query, m.ID, m.Image, m.Title, m.ReleaseDate, m.Stars, m.CategoryID)
	return err
}

func (s *SQLMovieStore) logWriteError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", err.Error()))
	level := slog.LevelError
	if isStoreError(err) {
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *SQLMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	if err := insertMovie(ctx, s.db, movie); err != nil {
		err = translateError("create movie", err)
		s.logWriteError(ctx, "Movie not created", err, slog.String("title", movie.Title))
		return err
	}
	s.logger.InfoContext(ctx, "Movie created in DB", slog.String("movieID", movie.ID))
	return nil
}

func (s *SQLMovieStore) CreateWithCategory(ctx context.Context, movie *domain.Movie, category *domain.Category) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertCategory(ctx, tx, category); err != nil {
		err = translateError("create category", err)
		s.logWriteError(ctx, "Category for movie not created", err, slog.String("name", category.Name))
		return err
	}
	movie.CategoryID = &category.ID
	if err := insertMovie(ctx, tx, movie); err != nil {
		err = translateError("create movie", err)
		s.logWriteError(ctx, "Movie not created", err, slog.String("title", movie.Title))
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit movie creation: %w", err)
	}
	s.logger.InfoContext(ctx, "Movie created with new category",
		slog.String("movieID", movie.ID), slog.String("categoryID", category.ID))
	return nil
}

func (s *SQLMovieStore) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	var m domain.Movie
	query := s.db.Rebind(`SELECT ` + movieColumns + ` FROM movies m WHERE m.id = ?`)
	if err := s.db.GetContext(ctx, &m, query, id); err != nil {
		err = translateError("get movie", err)
		if !isStoreError(err) {
			s.logger.ErrorContext(ctx, "Failed to get movie from DB", slog.String("movieID", id), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return &m, nil
}

// List возвращает фильмы по фильтрам. Без Order сортирует по названию,
// с Order - по дате выхода в заданном направлении.
func (s *SQLMovieStore) List(ctx context.Context, filter domain.MovieFilter) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies m WHERE 1=1`

	var conditions []string
	var args []interface{}
	if filter.Title != "" {
		conditions = append(conditions, "LOWER(m.title) LIKE LOWER(?)")
		args = append(args, "%"+filter.Title+"%")
	}
	if filter.CategoryID != "" {
		conditions = append(conditions, "m.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	// направление только из белого списка
	orderBy := "m.title ASC"
	switch filter.Order {
	case domain.OrderAsc:
		orderBy = "m.release_date ASC, m.title ASC"
	case domain.OrderDesc:
		orderBy = "m.release_date DESC, m.title ASC"
	}
	query = s.db.Rebind(query + " ORDER BY " + orderBy)

	movies := []*domain.Movie{}
	s.logger.DebugContext(ctx, "Executing List movies query", slog.String("query", query), slog.Any("args", args))
	if err := s.db.SelectContext(ctx, &movies, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movies from DB", slog.String("error", err.Error()))
		return nil, translateError("list movies", err)
	}
	return movies, nil
}

// ListByCharacter возвращает фильмы, в которых участвует персонаж.
func (s *SQLMovieStore) ListByCharacter(ctx context.Context, characterID string) ([]*domain.Movie, error) {
	query := s.db.Rebind(`SELECT ` + movieColumns + ` FROM movies m
        JOIN character_movie cm ON cm.movie_id = m.id
        WHERE cm.character_id = ? ORDER BY m.title ASC`)
	movies := []*domain.Movie{}
	if err := s.db.SelectContext(ctx, &movies, query, characterID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movies by character", slog.String("characterID", characterID), slog.String("error", err.Error()))
		return nil, translateError("list movies by character", err)
	}
	return movies, nil
}

func (s *SQLMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	query := s.db.Rebind(`UPDATE movies SET image = ?, title = ?, release_date = ?, stars = ?, category_id = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, movie.Image, movie.Title, movie.ReleaseDate, movie.Stars, movie.CategoryID, movie.ID)
	if err != nil {
		err = translateError("update movie", err)
		s.logWriteError(ctx, "Movie not updated", err, slog.String("movieID", movie.ID))
		return err
	}
	return checkAffected("update movie", res)
}

// Delete удаляет фильм вместе со связями character_movie (ON DELETE CASCADE).
func (s *SQLMovieStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM movies WHERE id = ?`), id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete movie from DB", slog.String("movieID", id), slog.String("error", err.Error()))
		return translateError("delete movie", err)
	}
	if err := checkAffected("delete movie", res); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Movie deleted from DB", slog.String("movieID", id))
	return nil
}

// AddCharacter сохраняет связь персонаж-фильм. Повтор пары дает ErrAlreadyExists.
func (s *SQLMovieStore) AddCharacter(ctx context.Context, link *domain.CharacterMovie) error {
	query := s.db.Rebind(`INSERT INTO character_movie (id, character_id, movie_id) VALUES (?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, link.ID, link.CharacterID, link.MovieID); err != nil {
		err = translateError("add character to movie", err)
		s.logWriteError(ctx, "Character not linked to movie", err,
			slog.String("characterID", link.CharacterID), slog.String("movieID", link.MovieID))
		return err
	}
	s.logger.InfoContext(ctx, "Character linked to movie",
		slog.String("characterID", link.CharacterID), slog.String("movieID", link.MovieID))
	return nil
}

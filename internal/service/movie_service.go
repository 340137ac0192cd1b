package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"
)

// Границы рейтинга фильма.
const (
	MinStars = 0
	MaxStars = 5
)

type MovieService struct {
	movies     store.MovieStore
	categories store.CategoryStore
	characters store.CharacterStore
	logger     *slog.Logger
}

func NewMovieService(movies store.MovieStore, categories store.CategoryStore, characters store.CharacterStore, logger *slog.Logger) *MovieService {
	return &MovieService{movies: movies, categories: categories, characters: characters, logger: logger}
}

// RoundStars округляет рейтинг до одного знака после запятой.
func RoundStars(v float64) float64 {
	return math.Round(v*10) / 10
}

func checkStars(v float64) (float64, error) {
	r := RoundStars(v)
	if math.IsNaN(r) || r < MinStars || r > MaxStars {
		return 0, fmt.Errorf("%w: stars must be between %d and %d", ErrValidation, MinStars, MaxStars)
	}
	return r, nil
}

func (s *MovieService) ensureCategory(ctx context.Context, id string) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return storeError("category", err)
	}
	return nil
}

// Create создает фильм. Категория задается либо ссылкой category_id,
// либо вложенным объектом category, который создается в той же транзакции.
func (s *MovieService) Create(ctx context.Context, req domain.CreateMovieRequest) (*domain.Movie, error) {
	if req.CategoryID != nil && req.Category != nil {
		return nil, fmt.Errorf("%w: use either category_id or category, not both", ErrValidation)
	}
	if req.ReleaseDate == nil || req.Stars == nil {
		return nil, fmt.Errorf("%w: release_date and stars are required", ErrValidation)
	}
	stars, err := checkStars(*req.Stars)
	if err != nil {
		return nil, err
	}
	movie := &domain.Movie{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Image:       req.Image,
		ReleaseDate: *req.ReleaseDate,
		Stars:       stars,
		CategoryID:  req.CategoryID,
	}

	if req.Category != nil {
		category := &domain.Category{ID: uuid.NewString(), Name: req.Category.Name, Image: req.Category.Image}
		if err := s.movies.CreateWithCategory(ctx, movie, category); err != nil {
			return nil, storeError("movie", err)
		}
		movie.Category = category
		s.logger.InfoContext(ctx, "Movie created with category", slog.String("movieID", movie.ID), slog.String("categoryID", category.ID))
		return movie, nil
	}

	if movie.CategoryID != nil {
		if err := s.ensureCategory(ctx, *movie.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, storeError("movie", err)
	}
	s.logger.InfoContext(ctx, "Movie created", slog.String("movieID", movie.ID))
	return movie, nil
}

func (s *MovieService) List(ctx context.Context, filter domain.MovieFilter) ([]*domain.Movie, error) {
	list, err := s.movies.List(ctx, filter)
	if err != nil {
		return nil, storeError("movie", err)
	}
	return list, nil
}

// GetByID возвращает фильм с категорией и персонажами.
func (s *MovieService) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("movie", err)
	}
	if movie.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *movie.CategoryID)
		switch {
		case err == nil:
			movie.Category = category
		case !errors.Is(err, store.ErrNotFound):
			return nil, storeError("category", err)
		}
	}
	characters, err := s.characters.List(ctx, domain.CharacterFilter{MovieID: id})
	if err != nil {
		return nil, storeError("character", err)
	}
	movie.Characters = characters
	return movie, nil
}

func (s *MovieService) Update(ctx context.Context, id string, req domain.UpdateMovieRequest) (*domain.Movie, error) {
	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("movie", err)
	}
	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Image != nil {
		movie.Image = *req.Image
	}
	if req.ReleaseDate != nil {
		movie.ReleaseDate = *req.ReleaseDate
	}
	if req.Stars != nil {
		stars, err := checkStars(*req.Stars)
		if err != nil {
			return nil, err
		}
		movie.Stars = stars
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		movie.CategoryID = req.CategoryID
	}
	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, storeError("movie", err)
	}
	s.logger.InfoContext(ctx, "Movie updated", slog.String("movieID", id))
	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return storeError("movie", err)
	}
	s.logger.InfoContext(ctx, "Movie deleted", slog.String("movieID", id))
	return nil
}

// AddCharacter связывает существующего персонажа с существующим фильмом.
func (s *MovieService) AddCharacter(ctx context.Context, req domain.AddCharacterRequest) (*domain.CharacterMovie, error) {
	if _, err := s.characters.GetByID(ctx, req.CharacterID); err != nil {
		return nil, storeError("character", err)
	}
	if _, err := s.movies.GetByID(ctx, req.MovieID); err != nil {
		return nil, storeError("movie", err)
	}
	link := &domain.CharacterMovie{ID: uuid.NewString(), CharacterID: req.CharacterID, MovieID: req.MovieID}
	if err := s.movies.AddCharacter(ctx, link); err != nil {
		return nil, storeError("character in movie", err)
	}
	return link, nil
}

// Exists используется gRPC-поиском.
func (s *MovieService) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.movies.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

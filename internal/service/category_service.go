package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"
)

type CategoryService struct {
	categories store.CategoryStore
	movies     store.MovieStore
	logger     *slog.Logger
}

func NewCategoryService(categories store.CategoryStore, movies store.MovieStore, logger *slog.Logger) *CategoryService {
	return &CategoryService{categories: categories, movies: movies, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, req domain.CreateCategoryRequest) (*domain.Category, error) {
	c := &domain.Category{ID: uuid.NewString(), Name: req.Name, Image: req.Image}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, storeError("category", err)
	}
	s.logger.InfoContext(ctx, "Category created", slog.String("categoryID", c.ID))
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, storeError("category", err)
	}
	return list, nil
}

// GetByID возвращает категорию вместе с ее фильмами.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("category", err)
	}
	movies, err := s.movies.List(ctx, domain.MovieFilter{CategoryID: id})
	if err != nil {
		return nil, storeError("movie", err)
	}
	c.Movies = movies
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req domain.UpdateCategoryRequest) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("category", err)
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Image != nil {
		c.Image = *req.Image
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, storeError("category", err)
	}
	s.logger.InfoContext(ctx, "Category updated", slog.String("categoryID", id))
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return storeError("category", err)
	}
	s.logger.InfoContext(ctx, "Category deleted", slog.String("categoryID", id))
	return nil
}

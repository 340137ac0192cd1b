package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"
)

type CharacterService struct {
	characters store.CharacterStore
	movies     store.MovieStore
	logger     *slog.Logger
}

func NewCharacterService(characters store.CharacterStore, movies store.MovieStore, logger *slog.Logger) *CharacterService {
	return &CharacterService{characters: characters, movies: movies, logger: logger}
}

func (s *CharacterService) Create(ctx context.Context, req domain.CreateCharacterRequest) (*domain.Character, error) {
	ch := &domain.Character{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Image: req.Image,
		Story: req.Story,
	}
	if req.Age != nil {
		ch.Age = *req.Age
	}
	if req.Weight != nil {
		ch.Weight = *req.Weight
	}
	if err := s.characters.Create(ctx, ch); err != nil {
		return nil, storeError("character", err)
	}
	s.logger.InfoContext(ctx, "Character created", slog.String("characterID", ch.ID))
	return ch, nil
}

func (s *CharacterService) List(ctx context.Context, filter domain.CharacterFilter) ([]*domain.Character, error) {
	list, err := s.characters.List(ctx, filter)
	if err != nil {
		return nil, storeError("character", err)
	}
	return list, nil
}

// GetByID возвращает персонажа вместе с фильмами, в которых он участвует.
func (s *CharacterService) GetByID(ctx context.Context, id string) (*domain.Character, error) {
	ch, err := s.characters.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("character", err)
	}
	movies, err := s.movies.ListByCharacter(ctx, id)
	if err != nil {
		return nil, storeError("movie", err)
	}
	ch.Movies = movies
	return ch, nil
}

func (s *CharacterService) Update(ctx context.Context, id string, req domain.UpdateCharacterRequest) (*domain.Character, error) {
	ch, err := s.characters.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("character", err)
	}
	if req.Name != nil {
		ch.Name = *req.Name
	}
	if req.Image != nil {
		ch.Image = *req.Image
	}
	if req.Age != nil {
		ch.Age = *req.Age
	}
	if req.Weight != nil {
		ch.Weight = *req.Weight
	}
	if req.Story != nil {
		ch.Story = *req.Story
	}
	if err := s.characters.Update(ctx, ch); err != nil {
		return nil, storeError("character", err)
	}
	s.logger.InfoContext(ctx, "Character updated", slog.String("characterID", id))
	return ch, nil
}

func (s *CharacterService) Delete(ctx context.Context, id string) error {
	if err := s.characters.Delete(ctx, id); err != nil {
		return storeError("character", err)
	}
	s.logger.InfoContext(ctx, "Character deleted", slog.String("characterID", id))
	return nil
}

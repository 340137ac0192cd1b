package service

import (
	"errors"
	"fmt"

	"catalog-service/internal/store"
)

// Ошибки сервисного слоя. Обработчики переводят их в HTTP-статусы.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// storeError переводит ошибку хранилища в ошибку сервиса для сущности entity.
func storeError(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %s already exists", ErrConflict, entity)
	case errors.Is(err, store.ErrInvalidReference):
		return fmt.Errorf("%w: %s references a missing record", ErrValidation, entity)
	}
	return err
}

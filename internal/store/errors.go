package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record with these unique fields already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// Коды ошибок PostgreSQL, которые переводим в ошибки хранилища.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError переводит ошибки драйверов (PostgreSQL и SQLite) в ошибки хранилища.
// Остальные ошибки оборачиваются с контекстом op.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w (constraint %s)", ErrAlreadyExists, pqErr.Constraint)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w (constraint %s)", ErrInvalidReference, pqErr.Constraint)
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrAlreadyExists
		case sqlite3.ErrConstraintForeignKey:
			return ErrInvalidReference
		}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

// isStoreError сообщает, что ошибка ожидаемая и логировать ее как сбой не нужно.
func isStoreError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrInvalidReference)
}

// checkAffected возвращает ErrNotFound, если запрос не затронул ни одной строки.
func checkAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check %s result: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"

	"catalog-service/internal/db"
)

var (
	dbSeq    atomic.Int64
	unsafeRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)
)

// Logger возвращает логгер, который ничего не пишет.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenTestDB открывает отдельную in-memory SQLite базу с примененными миграциями.
// База закрывается через t.Cleanup.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	name := fmt.Sprintf("%s_%d", unsafeRe.ReplaceAllString(t.Name(), "_"), dbSeq.Add(1))
	d, err := db.Open(context.Background(), db.DriverSQLite, "file:"+name+"?mode=memory&cache=shared&_foreign_keys=on", Logger())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	stdfs "io/fs"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Поддерживаемые драйверы.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Open подключается к БД и применяет новые миграции.
// Миграции лежат в internal/db/migrations/<driver>/NNNN_name.up.sql.
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, errors.New("DB connection string cannot be empty")
	}
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB driver %q", driver)
	}

	logger.Info("Connecting to database...", slog.String("driver", driver), slog.String("dsn", MaskDSN(dsn)))
	d, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// in-memory база живет, пока жив хотя бы один коннект; PRAGMA действует на коннект
		d.SetMaxOpenConns(1)
		if _, err := d.ExecContext(ctx, `PRAGMA foreign_keys=ON`); err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		if _, err := d.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
			_ = d.Close()
			return nil, err
		}
	}

	applied, err := applyMigrations(ctx, d, driver)
	if err != nil {
		_ = d.Close()
		return nil, err
	}
	logger.Info("Database ready", slog.String("driver", driver), slog.Int("migrations_applied", applied))
	return d, nil
}

// MaskDSN скрывает пароль в строке подключения для логов.
func MaskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	scheme := strings.Index(dsn, "://")
	start := 0
	if scheme >= 0 {
		start = scheme + 3
	}
	colon := strings.Index(dsn[start:at], ":")
	if colon < 0 {
		return dsn
	}
	return dsn[:start+colon+1] + "********" + dsn[at:]
}

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

type migration struct {
	version int
	name    string
	upFile  string
}

var migFileRe = regexp.MustCompile(`^([0-9]{4})_(.+)\.up\.sql$`)

func loadMigrations(driver string) (map[int]migration, error) {
	entries := map[int]migration{}
	dir := "migrations/" + driver
	list, err := stdfs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("no migrations for driver %s: %w", driver, err)
	}
	for _, de := range list {
		if de.IsDir() {
			continue
		}
		m := migFileRe.FindStringSubmatch(de.Name())
		if m == nil {
			continue
		}
		var ver int
		if _, err := fmt.Sscanf(m[1], "%04d", &ver); err != nil {
			continue
		}
		entries[ver] = migration{version: ver, name: m[2], upFile: dir + "/" + de.Name()}
	}
	return entries, nil
}

func appliedVersions(ctx context.Context, d *sqlx.DB) (map[int]bool, error) {
	if _, err := d.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
        version INTEGER PRIMARY KEY,
        applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`); err != nil {
		return nil, err
	}
	var versions []int
	if err := d.SelectContext(ctx, &versions, `SELECT version FROM schema_migrations`); err != nil {
		return nil, err
	}
	got := make(map[int]bool, len(versions))
	for _, v := range versions {
		got[v] = true
	}
	return got, nil
}

func applyMigrations(ctx context.Context, d *sqlx.DB, driver string) (int, error) {
	migs, err := loadMigrations(driver)
	if err != nil {
		return 0, err
	}
	applied, err := appliedVersions(ctx, d)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	versions := make([]int, 0, len(migs))
	for v := range migs {
		versions = append(versions, v)
	}
	sort.Ints(versions)

	count := 0
	for _, v := range versions {
		if applied[v] {
			continue
		}
		sqlText, err := migrationsFS.ReadFile(migs[v].upFile)
		if err != nil {
			return count, err
		}
		tx, err := d.BeginTxx(ctx, nil)
		if err != nil {
			return count, err
		}
		if _, err := tx.ExecContext(ctx, string(sqlText)); err != nil {
			_ = tx.Rollback()
			return count, fmt.Errorf("migration %04d_%s failed: %w", v, migs[v].name, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO schema_migrations(version) VALUES(?)`), v); err != nil {
			_ = tx.Rollback()
			return count, err
		}
		if err := tx.Commit(); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

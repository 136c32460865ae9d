package di

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goliatone/go-translations/internal/runtimeconfig"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// openBunDB opens a database handle for the configured driver. Callers own
// closing the returned handle.
func openBunDB(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	var db *bun.DB
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "sqlite":
		sqldb, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite storage: %w", err)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case "postgres":
		sqldb, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("di: open postgres storage: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, cfg.Driver)
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db, nil
}

// Package migration applies the SQL schema for the relational storage drivers.
package migration

import (
	"database/sql"
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

func source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
}

// Up applies every pending migration and returns how many ran.
func Up(db *sql.DB, dialect string) (int, error) {
	n, err := migrate.Exec(db, dialect, source(), migrate.Up)
	if err != nil {
		return n, fmt.Errorf("migrate up: %w", err)
	}
	zap.L().Named("migration").Info("migrations applied", zap.String("dialect", dialect), zap.Int("count", n))
	return n, nil
}

// Down rolls back at most steps migrations. steps <= 0 rolls back all of them.
func Down(db *sql.DB, dialect string, steps int) (int, error) {
	n, err := migrate.ExecMax(db, dialect, source(), migrate.Down, steps)
	if err != nil {
		return n, fmt.Errorf("migrate down: %w", err)
	}
	zap.L().Named("migration").Info("migrations rolled back", zap.String("dialect", dialect), zap.Int("count", n))
	return n, nil
}

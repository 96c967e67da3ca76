package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

//go:embed migrations
var dbMigrations embed.FS

// Migrate chạy toàn bộ migration của dialect lên db.
func Migrate(db *sql.DB, dialect string) error {
	src, err := iofs.New(dbMigrations, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("migration source %q: %w", dialect, err)
	}

	var dst migratedb.Driver
	switch dialect {
	case DialectPostgres:
		dst, err = postgres.WithInstance(db, &postgres.Config{})
	case DialectSQLite:
		dst, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}
	if err != nil {
		return err
	}

	migrator, err := migrate.NewWithInstance("iofs", src, dialect, dst)
	if err != nil {
		return err
	}

	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		// db already up to date
		break
	case err != nil:
		return err
	}
	return nil
}

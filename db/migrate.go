package db

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies the versioned migration list for the selected engine.
// Each migration is idempotent by construction and tracked in the migrate
// version table, so re-running against an already-migrated store is a no-op.
func RunMigrations(dbType DBType, dsn, sourceURL string) error {
	var (
		conn       *sql.DB
		driver     database.Driver
		driverName string
		err        error
	)

	switch dbType {
	case SQLite:
		conn, err = sql.Open("sqlite3", dsn)
		if err != nil {
			return fmt.Errorf("could not open sqlite store: %w", err)
		}
		driver, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
		driverName = "sqlite3"
	case Postgres:
		conn, err = sql.Open("postgres", dsn)
		if err != nil {
			return fmt.Errorf("could not connect to postgres: %w", err)
		}
		driver, err = migratepg.WithInstance(conn, &migratepg.Config{})
		driverName = "postgres"
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
	if err != nil {
		conn.Close()
		return fmt.Errorf("could not start %s migration driver: %w", driverName, err)
	}
	defer conn.Close()

	m, err := migrate.NewWithDatabaseInstance(sourceURL, driverName, driver)
	if err != nil {
		return fmt.Errorf("migration failed to start: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run up migrations: %w", err)
	}

	log.Println("migrations applied")
	return nil
}

// MigrationSource returns the file source URL for the engine, relative to
// the repository root.
func MigrationSource(dbType DBType) string {
	return fmt.Sprintf("file://db/migrations/%s", dbType)
}

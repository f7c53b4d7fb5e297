package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Migrate applies all pending schema migrations for the given driver.
// Each dialect carries its own migration directory since the schemas differ
// in identity column syntax.
func Migrate(db *sql.DB, driver string) error {
	goose.SetBaseFS(embedMigrations)

	var dialect, dir string
	switch driver {
	case "sqlite3":
		dialect, dir = "sqlite3", "sqlite"
	case "pgx":
		dialect, dir = "postgres", "postgres"
	default:
		return fmt.Errorf("migration error: unsupported driver %q", driver)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

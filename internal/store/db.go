package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/okatev/mailmirror/internal/config"
	"github.com/okatev/mailmirror/internal/logger"
	"github.com/okatev/mailmirror/migrations"
)

// DB wraps the mirror database connection together with the dialect
// details (placeholder format, driver name) the repositories need.
type DB struct {
	*sql.DB
	driver      string
	placeholder sq.PlaceholderFormat
	logger      *logger.Logger
}

// NewDB opens the mirror database for the configured driver, verifies the
// connection and applies pending migrations.
//
// For SQLite the DSN is decorated so that foreign keys are always enforced
// and every write transaction takes its lock at BEGIN (immediate mode): a
// second concurrent writer fails fast at transaction start instead of
// failing mid-transaction on lock upgrade.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	var (
		dsn         string
		placeholder sq.PlaceholderFormat
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
			log.Err(err).Str("func", "store.NewDB").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file: %w", err)
		}
		dsn = sqliteDSN(cfg.DSN)
		placeholder = sq.Question
	case config.DriverPostgres:
		dsn = cfg.DSN
		placeholder = sq.Dollar
	default:
		return nil, fmt.Errorf("unsupported mirror database driver %q", cfg.Driver)
	}

	conn, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		log.Err(err).Str("func", "store.NewDB").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to mirror database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "store.NewDB").Msg("error connecting database (ping)")
		return nil, err
	}

	db := &DB{
		DB:          conn,
		driver:      cfg.Driver,
		placeholder: placeholder,
		logger:      log,
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "store.NewDB").Msg("error migrating mirror schema")
		return nil, err
	}
	log.Debug().Str("func", "store.NewDB").Str("driver", cfg.Driver).Msg("mirror database ready")

	return db, nil
}

// Migrate applies the embedded schema migrations for the active dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// builder returns a squirrel statement builder bound to the dialect's
// placeholder format.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}

// sqliteDSN decorates a SQLite path with the connection options the mirror
// relies on: foreign-key enforcement, a bounded busy wait, and immediate
// transaction locking.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dbFile == ":memory:" || strings.Contains(dbFile, "mode=memory") {
		return nil
	}
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, createErr := os.Create(dbFile)
		if createErr != nil {
			return fmt.Errorf("error creating DB file: %w", createErr)
		}
		return f.Close()
	}

	return nil
}

package config

import (
	"time"
)

// Config is the top-level configuration container for mailmirror. It is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type Config struct {
	// Remote holds the connection settings for the remote mailbox store.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds the local mirror database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background sync job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged underneath values
	// already loaded from the environment and flags.
	// Populated via the CONFIG environment variable or the -c/-config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote holds everything needed to reach the remote mailbox store.
type Remote struct {
	// SessionURL is the session bootstrap endpoint; the session document it
	// returns resolves the account id, API URL and download URL.
	// Env: REMOTE_SESSION_URL
	SessionURL string `env:"SESSION_URL"`

	// Token is the bearer token presented on every request. The token is
	// opaque; the client never inspects it.
	// Env: REMOTE_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds every outbound request (e.g. "15s").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// DB holds the mirror database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the mirror database.
type DB struct {
	// Driver selects the database driver: "sqlite3" (default) or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string: a file path for SQLite or a
	// postgres:// URL for PostgreSQL.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers holds background job settings.
type Workers struct {
	// SyncInterval defines how often the background sync job re-runs the
	// reconciler. Zero disables the job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// App holds application-level settings.
type App struct {
	// LogPath is the file the client appends structured logs to. Empty
	// means stderr.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`

	// EmailPageSize caps how many messages are listed per folder.
	// Env: APP_EMAIL_PAGE_SIZE
	EmailPageSize int `env:"EMAIL_PAGE_SIZE"`
}

// GetConfig loads, merges and validates the full configuration.
//
// Priority: environment variables, then command-line flags, then the JSON
// file named by either of the first two.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

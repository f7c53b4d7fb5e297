package config

import "errors"

// Validation errors returned by [Config.validate]. Callers match them with
// errors.Is.
var (
	// ErrNoSessionURL is returned when no remote session URL was supplied
	// by any configuration source.
	ErrNoSessionURL = errors.New("remote session url is required")

	// ErrNoToken is returned when no bearer token was supplied.
	ErrNoToken = errors.New("remote bearer token is required")

	// ErrNoDSN is returned when no mirror database DSN was supplied.
	ErrNoDSN = errors.New("mirror database dsn is required")

	// ErrUnknownDriver is returned when the configured database driver is
	// neither "sqlite3" nor "pgx".
	ErrUnknownDriver = errors.New("unknown mirror database driver")

	// ErrNegativeInterval is returned when the sync interval is negative.
	ErrNegativeInterval = errors.New("sync interval must not be negative")
)

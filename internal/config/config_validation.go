package config

import (
	"errors"
	"fmt"
	"time"
)

// Supported mirror database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultEmailPageSize  = 20
)

// applyDefaults fills settings that have a sensible fallback. Required
// settings (session URL, token, DSN) are deliberately left alone so that
// validate can reject an incomplete configuration.
func (c *Config) applyDefaults() {
	if c.Storage.DB.Driver == "" {
		c.Storage.DB.Driver = DriverSQLite
	}
	if c.Remote.RequestTimeout <= 0 {
		c.Remote.RequestTimeout = defaultRequestTimeout
	}
	if c.App.EmailPageSize <= 0 {
		c.App.EmailPageSize = defaultEmailPageSize
	}
}

// validate checks the merged configuration for completeness. All problems
// are reported at once via errors.Join.
func (c *Config) validate() error {
	var errs []error

	if c.Remote.SessionURL == "" {
		errs = append(errs, ErrNoSessionURL)
	}
	if c.Remote.Token == "" {
		errs = append(errs, ErrNoToken)
	}
	if c.Storage.DB.DSN == "" {
		errs = append(errs, ErrNoDSN)
	}
	if c.Storage.DB.Driver != DriverSQLite && c.Storage.DB.Driver != DriverPostgres {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.DB.Driver))
	}
	if c.Workers.SyncInterval < 0 {
		errs = append(errs, ErrNegativeInterval)
	}

	return errors.Join(errs...)
}

package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-session-url remote session bootstrap URL
//	-token bearer token for the remote store
//	-request-timeout outbound request timeout (e.g., "15s")
//	-d mirror database DSN (file path for sqlite3, URL for pgx)
//	-driver mirror database driver ("sqlite3" or "pgx")
//	-sync-interval background sync interval (e.g., "5m"; 0 disables)
//	-log-path structured log file path
//	-c/-config json file path with configs
func ParseFlags() *Config {
	var sessionURL string
	var token string
	var requestTimeout time.Duration
	var databaseDSN string
	var databaseDriver string
	var syncInterval time.Duration
	var logPath string
	var jsonConfigPath string
	var emailPageSize int

	flag.StringVar(&sessionURL, "session-url", "", "Remote session bootstrap URL")
	flag.StringVar(&token, "token", "", "Bearer token for the remote store")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	flag.StringVar(&databaseDSN, "d", "", "Mirror database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Mirror database driver (sqlite3 or pgx)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (0 disables)")
	flag.StringVar(&logPath, "log-path", "", "Structured log file path")
	flag.IntVar(&emailPageSize, "email-page-size", 0, "Messages listed per folder")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &Config{
		Remote: Remote{
			SessionURL:     sessionURL,
			Token:          token,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		App: App{
			LogPath:       logPath,
			EmailPageSize: emailPageSize,
		},
		JSONFilePath: jsonConfigPath,
	}
}

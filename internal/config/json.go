package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration so JSON config files can use human-readable
// values like "15s" or "5m".
type Duration time.Duration

// UnmarshalJSON accepts either a duration string ("30s") or a number of
// nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		parsed, parseErr := time.ParseDuration(asString)
		if parseErr != nil {
			return fmt.Errorf("invalid duration %q: %w", asString, parseErr)
		}
		*d = Duration(parsed)
		return nil
	}

	var asNanos int64
	if err := json.Unmarshal(data, &asNanos); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	*d = Duration(asNanos)
	return nil
}

type jsonConfig struct {
	Remote struct {
		SessionURL     string   `json:"session_url"`
		Token          string   `json:"token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"remote,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`

	App struct {
		LogPath       string `json:"log_path"`
		EmailPageSize int    `json:"email_page_size"`
	} `json:"app,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg jsonConfig
	if err = json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		Remote: Remote{
			SessionURL:     jsonCfg.Remote.SessionURL,
			Token:          jsonCfg.Remote.Token,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		App: App{
			LogPath:       jsonCfg.App.LogPath,
			EmailPageSize: jsonCfg.App.EmailPageSize,
		},
	}

	return cfg, nil
}

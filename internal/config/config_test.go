package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_MapsVariables(t *testing.T) {
	t.Setenv("REMOTE_SESSION_URL", "https://jmap.example.com/session")
	t.Setenv("REMOTE_TOKEN", "secret-token")
	t.Setenv("REMOTE_REQUEST_TIMEOUT", "20s")
	t.Setenv("STORAGE_DB_DRIVER", "sqlite3")
	t.Setenv("STORAGE_DB_DSN", "/tmp/mail.db")
	t.Setenv("WORKERS_SYNC_INTERVAL", "5m")

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "https://jmap.example.com/session", cfg.Remote.SessionURL)
	assert.Equal(t, "secret-token", cfg.Remote.Token)
	assert.Equal(t, 20*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "/tmp/mail.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseJSON_MapsFields(t *testing.T) {
	raw := map[string]any{
		"remote": map[string]any{
			"session_url":     "https://jmap.example.com/session",
			"token":           "json-token",
			"request_timeout": "30s",
		},
		"storage": map[string]any{
			"db": map[string]any{"driver": "pgx", "dsn": "postgres://localhost/mail"},
		},
		"workers": map[string]any{"sync_interval": "1m"},
	}
	payload, err := json.Marshal(raw)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-token", cfg.Remote.Token)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "pgx", cfg.Storage.DB.Driver)
	assert.Equal(t, "postgres://localhost/mail", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"45s"`), &d))
	assert.Equal(t, 45*time.Second, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, time.Duration(d))

	require.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := &Config{}
	cfg.Workers.SyncInterval = -time.Second
	cfg.applyDefaults()

	err := cfg.validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSessionURL)
	assert.ErrorIs(t, err, ErrNoToken)
	assert.ErrorIs(t, err, ErrNoDSN)
	assert.ErrorIs(t, err, ErrNegativeInterval)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{
		Remote:  Remote{SessionURL: "https://x", Token: "t"},
		Storage: Storage{DB: DB{Driver: "oracle", DSN: "x"}},
	}
	cfg.applyDefaults()

	assert.ErrorIs(t, cfg.validate(), ErrUnknownDriver)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, defaultRequestTimeout, cfg.Remote.RequestTimeout)
	assert.Equal(t, defaultEmailPageSize, cfg.App.EmailPageSize)
}

func TestBuilder_EnvWinsOverJSON(t *testing.T) {
	raw := []byte(`{"remote": {"session_url": "https://from-json", "token": "json-token"}, "storage": {"db": {"dsn": "json.db"}}}`)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	t.Setenv("REMOTE_SESSION_URL", "https://from-env")
	t.Setenv("REMOTE_TOKEN", "env-token")
	t.Setenv("CONFIG", path)

	cfg, err := newConfigBuilder().withEnv().withJSON().build()
	require.NoError(t, err)

	assert.Equal(t, "https://from-env", cfg.Remote.SessionURL)
	assert.Equal(t, "env-token", cfg.Remote.Token)
	// json fills what the env left empty
	assert.Equal(t, "json.db", cfg.Storage.DB.DSN)
}

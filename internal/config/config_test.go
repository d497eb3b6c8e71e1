package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimal = `
[database]
host = "db"
dbname = "booking"
user = "app"
password = "secret"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "professional", cfg.Engine.Vertical)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 30, cfg.Cache.TTLSeconds)
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=booking sslmode=disable", cfg.Database.DSN())
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal+`
[server]
http_port = 9090

[engine]
vertical = "salon"
timezone = "Europe/Moscow"

[rate_limit]
enabled = true
requests_per_second = 2.5
burst = 5
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "salon", cfg.Engine.Vertical)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)

	loc, err := cfg.Engine.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCHED_DB_HOST", "postgres.internal")
	t.Setenv("SCHED_HTTP_PORT", "7000")
	t.Setenv("SCHED_VERTICAL", "events")
	t.Setenv("SCHED_METRICS_ENABLED", "true")

	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, 7000, cfg.Server.HTTPPort)
	assert.Equal(t, "events", cfg.Engine.Vertical)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("SCHED_HTTP_PORT", "eighty")
		_, err := Load(writeConfig(t, minimal))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unknown vertical", func(t *testing.T) {
		_, err := Load(writeConfig(t, minimal+"\n[engine]\nvertical = \"spaceport\"\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		_, err := Load(writeConfig(t, minimal+"\n[engine]\ntimezone = \"Mars/Olympus\"\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}

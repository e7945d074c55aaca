package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockwatchlogs/pkg/logging"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(c *ServerConfiguration)
		wantField string
	}{
		{"defaults", func(*ServerConfiguration) {}, ""},
		{"auto port", func(c *ServerConfiguration) { c.Port = 0 }, ""},
		{"negative port", func(c *ServerConfiguration) { c.Port = -1 }, "port"},
		{"negative timeout", func(c *ServerConfiguration) { c.ReadTimeout = -1 }, "readTimeout"},
		{"bad level", func(c *ServerConfiguration) { c.Logging.Level = "trace" }, "logging.level"},
		{"mixed case level", func(c *ServerConfiguration) { c.Logging.Level = "WARN" }, ""},
		{"bad format", func(c *ServerConfiguration) { c.Logging.Format = "xml" }, "logging.format"},
		{"missing log dir", func(c *ServerConfiguration) { c.Logging.File = "/nonexistent/dir/x.log" }, "logging.file"},
		{"relative metrics path", func(c *ServerConfiguration) { c.Metrics.Path = "metrics" }, "metrics.path"},
		{"disabled metrics ignores path", func(c *ServerConfiguration) {
			c.Metrics.Enabled = false
			c.Metrics.Path = ""
		}, ""},
		{"negative request log", func(c *ServerConfiguration) { c.RequestLog.MaxEntries = -5 }, "requestLog.maxEntries"},
		{"already exists 400", func(c *ServerConfiguration) { c.Compat.AlreadyExistsStatus = 400 }, ""},
		{"already exists 200", func(c *ServerConfiguration) { c.Compat.AlreadyExistsStatus = 200 }, "compat.alreadyExistsStatus"},
		{"bad seed group", func(c *ServerConfiguration) { c.Seed = []SeedGroup{{Name: "bad name"}} }, "seed[0].name"},
		{"duplicate seed group", func(c *ServerConfiguration) {
			c.Seed = []SeedGroup{{Name: "g"}, {Name: "g"}}
		}, "seed[1].name"},
		{"bad seed stream", func(c *ServerConfiguration) {
			c.Seed = []SeedGroup{{Name: "g", Streams: []SeedStream{{Name: "a:b"}}}}
		}, "seed[0].streams[0].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultServerConfiguration()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{EnvPort: "7100", EnvLogLevel: "debug"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultServerConfiguration()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, 7100, cfg.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)

	env[EnvPort] = "not-a-port"
	assert.Error(t, DefaultServerConfiguration().ApplyEnv(lookup))
}

func TestLoggerConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultServerConfiguration()
	cfg.Logging.Level = "Error"
	cfg.Logging.Format = "json"
	cfg.Logging.File = filepath.Join(t.TempDir(), "out.log")
	cfg.Logging.MaxSizeMB = 5

	lc := cfg.LoggerConfig()
	assert.Equal(t, logging.LevelError, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)
	assert.Equal(t, cfg.Logging.File, lc.File.Path)
	assert.Equal(t, 5, lc.File.MaxSizeMB)
}

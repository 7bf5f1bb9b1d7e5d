package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"DB_DRIVER", "SQLITE_FILE", "POSTGRES_DSN", "LOG_LEVEL", "LOG_FORMAT",
	"TTSCORE_STORE_DB_DRIVER", "TTSCORE_STORE_SQLITE_FILE", "TTSCORE_STORE_POSTGRES_DSN",
	"TTSCORE_LOG_LOG_LEVEL", "TTSCORE_LOG_LOG_FORMAT",
}

// clearEnv blanks every variable the config reads. t.Setenv restores the
// previous values after the test; Unsetenv makes them absent for envconfig.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := New(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.Store.Driver)
	assert.Equal(t, "ttscore.db", c.Store.SQLiteFile)
	assert.Equal(t, "ttscore.db", c.Store.DSN())
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, FormatText, c.Log.Format)
}

func TestNew_BareAndPrefixedNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "postgres://bare")
	t.Setenv("TTSCORE_STORE_POSTGRES_DSN", "postgres://prefixed")

	c, err := New(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "postgres", c.Store.Driver)
	assert.Equal(t, "postgres://prefixed", c.Store.DSN(), "prefixed name wins over the bare one")
}

func TestNew_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER=memory\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")

	c, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", c.Store.Driver)
	assert.Equal(t, "warn", c.Log.Level, "environment wins over .env")
	assert.Equal(t, "", c.Store.DSN())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"DB_DRIVER", "mongo", "DB_DRIVER"},
		{"LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"LOG_FORMAT", "xml", "LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := New(missingEnvFile(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Warn":    slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := Log{Level: "warn", Format: FormatText}.NewLogger(&buf, false)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	l = Log{Level: "warn", Format: FormatText}.NewLogger(&buf, true)
	l.Debug("verbose")
	assert.Contains(t, buf.String(), "msg=verbose")

	buf.Reset()
	l = Log{Level: "info", Format: FormatJSON}.NewLogger(&buf, false)
	l.Info("structured", "key", "v")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "structured", entry["msg"])
	assert.Equal(t, "v", entry["key"])
}

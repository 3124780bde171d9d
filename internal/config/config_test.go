package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, TransportStdio, cfg.Transport.Mode)
	require.Equal(t, "traffichours.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.Import.Atomic)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRAFFICHOURS_SERVER_PORT", "9090")
	t.Setenv("TRAFFICHOURS_TRANSPORT", "http")
	t.Setenv("TRAFFICHOURS_DB_PATH", "/tmp/hours.db")
	t.Setenv("TRAFFICHOURS_LOG_LEVEL", "debug")
	t.Setenv("TRAFFICHOURS_IMPORT_ATOMIC", "true")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, "/tmp/hours.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Import.Atomic)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
transport:
  mode: http
db:
  path: data/hours.db
import:
  atomic: true
`), 0o644))
	t.Setenv("TRAFFICHOURS_CONFIG_PATH", path)
	t.Setenv("TRAFFICHOURS_SERVER_PORT", "7171")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 7171, cfg.Server.Port)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, "data/hours.db", cfg.DB.Path)
	require.True(t, cfg.Import.Atomic)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "port", key: "TRAFFICHOURS_SERVER_PORT", val: "eighty"},
		{name: "transport", key: "TRAFFICHOURS_TRANSPORT", val: "carrier-pigeon"},
		{name: "atomic", key: "TRAFFICHOURS_IMPORT_ATOMIC", val: "maybe"},
		{name: "missing file", key: "TRAFFICHOURS_CONFIG_PATH", val: "/nonexistent/config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

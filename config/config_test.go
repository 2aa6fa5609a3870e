package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DB_PORT", "MAX_LINE_QTY", "CATALOG_SOURCE", "CATALOG_PATH", "TOKEN", "LOG_LEVEL", "LOG_OUTPUT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 99, cfg.Order.MaxLineQty)
	assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, "menu.yaml", cfg.Catalog.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.UsesDB())
	assert.Equal(t, "stderr", cfg.LogOutput(), "console mode keeps stdout for the transcript")
}

func TestLogOutput(t *testing.T) {
	tests := []struct {
		token, output, want string
	}{
		{"", "", "stderr"},
		{"123:abc", "", "stdout"},
		{"", "/var/log/pos.log", "/var/log/pos.log"},
		{"123:abc", "stderr", "stderr"},
	}
	for _, tt := range tests {
		cfg := &Config{Telegram: TelegramConfig{Token: tt.token}, Log: LogConfig{Output: tt.output}}
		if got := cfg.LogOutput(); got != tt.want {
			t.Errorf("LogOutput(token=%q, output=%q) = %q, want %q", tt.token, tt.output, got, tt.want)
		}
	}
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "Postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("MAX_LINE_QTY", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UsesDB())
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 10, cfg.Order.MaxLineQty)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "DB_PORT", "abc"},
		{"bad max qty", "MAX_LINE_QTY", "x"},
		{"zero max qty", "MAX_LINE_QTY", "0"},
		{"unknown source", "CATALOG_SOURCE", "redis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

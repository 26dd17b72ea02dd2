package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{
		"SYSTEMET_DB_NAME", "SYSTEMET_ADDR", "METRICS_PORT", "SYSTEMET_BASE_URL",
		"SYSTEMET_WEB_TITLE", "SYSTEMET_PAGE_LENGTH", "SYSTEMET_LANGUAGE_URL", "SYSTEMET_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabasePath, cfg.DatabasePath)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultMetricsPort, cfg.MetricsPort)
	assert.Equal(t, DefaultProductBaseURL, cfg.ProductBaseURL)
	assert.Equal(t, DefaultWebTitle, cfg.WebTitle)
	assert.Equal(t, DefaultPageLength, cfg.PageLength)
	assert.Equal(t, "", cfg.LanguageURL)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SYSTEMET_DB_NAME", "/data/catalog.db")
	t.Setenv("SYSTEMET_ADDR", "127.0.0.1:9000")
	t.Setenv("SYSTEMET_PAGE_LENGTH", "50")
	t.Setenv("SYSTEMET_LANGUAGE_URL", "//cdn.datatables.net/plug-ins/1.13.4/i18n/sv.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/catalog.db", cfg.DatabasePath)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 50, cfg.PageLength)
	assert.Equal(t, "//cdn.datatables.net/plug-ins/1.13.4/i18n/sv.json", cfg.LanguageURL)
}

func TestLoadInvalidPageLength(t *testing.T) {
	t.Chdir(t.TempDir())
	tests := []string{"abc", "0", "-3"}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			t.Setenv("SYSTEMET_PAGE_LENGTH", v)
			cfg, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "SYSTEMET_PAGE_LENGTH")
			assert.Equal(t, DefaultPageLength, cfg.PageLength)
		})
	}
}

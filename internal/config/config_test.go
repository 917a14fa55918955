package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("", func() []string { return nil })
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "/", cfg.BasePath)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, "https://github.com/Mk-dugri", cfg.Links.GitHub)
	require.Equal(t, "https://www.linkedin.com/in/monu9855/", cfg.Links.LinkedIn)
	require.Equal(t, "dist", cfg.Export.OutDir)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "linux-boot.yml")
	body := []byte(`addr: ":9000"
base_path: Linux-boot/
site_url: https://mk-dugri.github.io/
cors:
  allowed_origins:
    - https://example.com
analytics:
  ga4_measurement_id: G-FILE
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("LINUXBOOT_ANALYTICS__GA4_MEASUREMENT_ID", "G-ENV")
	t.Setenv("LINUXBOOT_LOG_LEVEL", "debug")

	cfg, err := load(path, func() []string { return []string{"PORT=7000"} })
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr, "explicit addr wins over PORT")
	require.Equal(t, "/Linux-boot", cfg.BasePath)
	require.Equal(t, "https://mk-dugri.github.io", cfg.SiteURL)
	require.Equal(t, []string{"https://example.com"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, "G-ENV", cfg.Analytics.GA4MeasurementID)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "https://mk-dugri.github.io/Linux-boot/", cfg.CanonicalURL())
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "absent.yml"), func() []string { return nil })
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
}

func TestLoadHonorsPort(t *testing.T) {
	cfg, err := load("", func() []string { return []string{"HOME=/root", "PORT=3001"} })
	require.NoError(t, err)
	require.Equal(t, ":3001", cfg.Addr)
}

func TestEnvKey(t *testing.T) {
	require.Equal(t, "cors.allowed_origins", envKey("LINUXBOOT_CORS__ALLOWED_ORIGINS"))
	require.Equal(t, "base_path", envKey("LINUXBOOT_BASE_PATH"))
}

func TestNormalizeSplitsOrigins(t *testing.T) {
	cfg := Default()
	cfg.CORS.AllowedOrigins = []string{"https://a.example, https://b.example", " "}
	cfg.normalize()
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = " " }},
		{"base path with query", func(c *Config) { c.BasePath = "/blog?x=1" }},
		{"relative site url", func(c *Config) { c.SiteURL = "example.com" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

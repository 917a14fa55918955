// Package config loads runtime settings: built-in defaults, then an optional
// YAML file, then LINUXBOOT_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mkdugri-blog/Linux-boot/internal/nav"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates nested keys: LINUXBOOT_CORS__ALLOWED_ORIGINS -> cors.allowed_origins.
const EnvPrefix = "LINUXBOOT_"

// Config is the top-level configuration, corresponding to linux-boot.yml.
type Config struct {
	Addr         string `yaml:"addr" koanf:"addr"`
	BasePath     string `yaml:"base_path" koanf:"base_path"`
	SiteURL      string `yaml:"site_url" koanf:"site_url"`
	Dev          bool   `yaml:"dev" koanf:"dev"`
	TemplatesDir string `yaml:"templates_dir" koanf:"templates_dir"`
	PublicDir    string `yaml:"public_dir" koanf:"public_dir"`
	LogLevel     string `yaml:"log_level" koanf:"log_level"`

	CORS      CORSConfig      `yaml:"cors" koanf:"cors"`
	Analytics AnalyticsConfig `yaml:"analytics" koanf:"analytics"`
	Links     LinksConfig     `yaml:"links" koanf:"links"`
	Share     ShareConfig     `yaml:"share" koanf:"share"`
	Export    ExportConfig    `yaml:"export" koanf:"export"`
}

// CORSConfig controls cross-origin access to the JSON step API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// AnalyticsConfig holds client instrumentation surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string `yaml:"ga4_measurement_id" koanf:"ga4_measurement_id"`
	Debug            bool   `yaml:"debug" koanf:"debug"`
}

// LinksConfig holds the outbound profile links shown in the conclusion and footer.
type LinksConfig struct {
	GitHub   string `yaml:"github" koanf:"github"`
	LinkedIn string `yaml:"linkedin" koanf:"linkedin"`
}

// ShareConfig overrides the share sheet title and text.
type ShareConfig struct {
	Title string `yaml:"title" koanf:"title"`
	Text  string `yaml:"text" koanf:"text"`
}

// ExportConfig controls the static site export.
type ExportConfig struct {
	OutDir string `yaml:"out_dir" koanf:"out_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:     ":8080",
		BasePath: "/",
		LogLevel: "info",
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Links: LinksConfig{
			GitHub:   "https://github.com/Mk-dugri",
			LinkedIn: "https://www.linkedin.com/in/monu9855/",
		},
		Export: ExportConfig{OutDir: "dist"},
	}
}

// Load reads the YAML file at path when it exists, then overlays environment
// variables. An empty path skips the file.
func Load(path string) (*Config, error) {
	return load(path, os.Environ)
}

func load(path string, environ func() []string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Cloud hosts inject PORT; honor it unless addr was set explicitly.
	if !k.Exists("addr") {
		for _, kv := range environ() {
			if port, ok := strings.CutPrefix(kv, "PORT="); ok && port != "" {
				cfg.Addr = ":" + port
			}
		}
	}
	cfg.normalize()
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) normalize() {
	c.BasePath = nav.NormalizeBase(c.BasePath)
	c.SiteURL = strings.TrimRight(strings.TrimSpace(c.SiteURL), "/")
	var origins []string
	for _, o := range c.CORS.AllowedOrigins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	c.CORS.AllowedOrigins = origins
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	if strings.ContainsAny(c.BasePath, "?#") {
		return fmt.Errorf("invalid base_path %q: must not contain a query or fragment", c.BasePath)
	}
	if c.SiteURL != "" {
		u, err := url.Parse(c.SiteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid site_url %q: must be an absolute http(s) URL", c.SiteURL)
		}
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// CanonicalURL returns the absolute URL of the page root, or the base path
// when no site URL is configured.
func (c *Config) CanonicalURL() string {
	return c.SiteURL + nav.Join(c.BasePath, "")
}

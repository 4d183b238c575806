package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ATOMIC_"

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the demo application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Assets   AssetsConfig   `yaml:"assets"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Theme    ThemeConfig    `yaml:"theme"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required,hostname_port"`
	SessionSecret   string        `yaml:"session_secret" validate:"required,min=16"`
	CookieSecure    bool          `yaml:"cookie_secure"`
	ContactOwner    string        `yaml:"contact_owner" validate:"omitempty,email"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// AssetsConfig locates the static tree. Root is the application root that
// contains static/; an empty Root serves the embedded demo assets.
type AssetsConfig struct {
	Root        string `yaml:"root"`
	Scripts     string `yaml:"scripts" validate:"required"`
	Stylesheets string `yaml:"stylesheets" validate:"required"`
	URL         string `yaml:"url" validate:"required,startswith=/"`
	Watch       bool   `yaml:"watch"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Human bool   `yaml:"human"`
}

type DatabaseConfig struct {
	DSN  string `yaml:"dsn" validate:"required"`
	Seed bool   `yaml:"seed"`
}

// ThemeConfig declares an optional go-theme manifest whose template entries
// override component partials such as "atoms.text".
type ThemeConfig struct {
	Name        string                  `yaml:"name"`
	Variant     string                  `yaml:"variant"`
	Templates   map[string]string       `yaml:"templates"`
	AssetPrefix string                  `yaml:"asset_prefix" validate:"omitempty,startswith=/"`
	Variants    map[string]ThemeVariant `yaml:"variants" validate:"dive"`
}

type ThemeVariant struct {
	Templates   map[string]string `yaml:"templates"`
	AssetPrefix string            `yaml:"asset_prefix" validate:"omitempty,startswith=/"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			SessionSecret:   "change-me-please-0123456789",
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			ContactOwner:    "owner@example.com",
		},
		Assets: AssetsConfig{
			Scripts:     "js",
			Stylesheets: "css",
			URL:         "/static/",
		},
		Log: LogConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			DSN:  "file:atomic.db?_pragma=busy_timeout(5000)",
			Seed: true,
		},
	}
}

// Load reads defaults, then the YAML file at path (when non-empty), then
// ATOMIC_* environment overrides, and validates the result.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if lookup != nil {
		if err := applyEnv(&cfg, lookup); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if value, ok := lookup(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(value)
		}
	}
	boolean := func(name string, dst *bool) error {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		*dst = parsed
		return nil
	}

	str("ADDR", &cfg.Server.Addr)
	str("SESSION_SECRET", &cfg.Server.SessionSecret)
	str("CONTACT_OWNER", &cfg.Server.ContactOwner)
	str("APP_ROOT", &cfg.Assets.Root)
	str("STATIC_URL", &cfg.Assets.URL)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("DATABASE", &cfg.Database.DSN)
	str("THEME", &cfg.Theme.Name)
	str("THEME_VARIANT", &cfg.Theme.Variant)

	for name, dst := range map[string]*bool{
		"WATCH_ASSETS":  &cfg.Assets.Watch,
		"LOG_HUMAN":     &cfg.Log.Human,
		"SEED":          &cfg.Database.Seed,
		"COOKIE_SECURE": &cfg.Server.CookieSecure,
	} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}
	return nil
}

// ThemeManifest converts the theme section into a go-theme manifest, or nil
// when no theme is configured.
func (t ThemeConfig) ThemeManifest() *theme.Manifest {
	if strings.TrimSpace(t.Name) == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:      strings.TrimSpace(t.Name),
		Templates: cloneMap(t.Templates),
		Assets:    theme.Assets{Prefix: t.AssetPrefix},
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, variant := range t.Variants {
			manifest.Variants[name] = theme.Variant{
				Templates: cloneMap(variant.Templates),
				Assets:    theme.Assets{Prefix: variant.AssetPrefix},
			}
		}
	}
	return manifest
}

func cloneMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

// Package config loads foodtree settings from a TOML file and FOODTREE_*
// environment variables. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/hierarchy"
)

// AppName names the config and cache directories.
const AppName = "foodtree"

// Config holds all foodtree configuration.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Render   RenderConfig   `toml:"render"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Ingest   IngestConfig   `toml:"ingest"`
}

// AnalysisConfig controls the analyze command and the report endpoint.
type AnalysisConfig struct {
	TopK   int      `toml:"top_k"`
	Traces []string `toml:"traces"`
}

// RenderConfig controls diagram output.
type RenderConfig struct {
	Format   string  `toml:"format"` // svg, pdf, png or dot
	Detailed bool    `toml:"detailed"`
	Title    string  `toml:"title"`
	Scale    float64 `toml:"scale"`
}

// CacheConfig selects the diagram cache backend.
type CacheConfig struct {
	Backend  string   `toml:"backend"` // file, redis or none
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// IngestConfig controls Open Food Facts ingestion.
type IngestConfig struct {
	Country string `toml:"country"`
	Root    string `toml:"root"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{TopK: 3},
		Render:   RenderConfig{Format: "svg", Scale: 2},
		Cache: CacheConfig{
			Backend: "file",
			Dir:     defaultCacheDir(),
			TTL:     Duration{24 * time.Hour},
		},
		Server: ServerConfig{Addr: ":8080"},
		Ingest: IngestConfig{Country: "en:united-states", Root: hierarchy.DefaultRoot},
	}
}

// Load reads the file at path over [Default], then applies environment
// overrides. An empty path means [DefaultPath], which may be absent; an
// explicit path must exist. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, os.ErrNotExist):
			if explicit {
				return Config{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config file %s", path)
			}
		case err != nil:
			return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "config file %s", path)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return Config{}, apperrors.New(apperrors.ErrCodeInvalidFormat,
					"config file %s: unknown key %q", path, undecoded[0].String())
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and numeric fields.
func (c Config) Validate() error {
	switch c.Render.Format {
	case "svg", "pdf", "png", "dot":
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput, "render.format %q: want svg, pdf, png or dot", c.Render.Format)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput, "cache.backend %q: want file, redis or none", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
	}
	if c.Render.Scale <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "render.scale must be positive")
	}
	if c.Cache.TTL.Duration < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

// applyEnv overlays FOODTREE_* variables onto cfg.
func applyEnv(cfg *Config) error {
	var err error
	if cfg.Analysis.TopK, err = getenvInt("FOODTREE_TOP_K", cfg.Analysis.TopK); err != nil {
		return err
	}
	if v := os.Getenv("FOODTREE_TRACES"); v != "" {
		cfg.Analysis.Traces = splitList(v)
	}
	cfg.Render.Format = getenv("FOODTREE_RENDER_FORMAT", cfg.Render.Format)
	if cfg.Render.Detailed, err = getenvBool("FOODTREE_RENDER_DETAILED", cfg.Render.Detailed); err != nil {
		return err
	}
	cfg.Render.Title = getenv("FOODTREE_RENDER_TITLE", cfg.Render.Title)
	cfg.Cache.Backend = getenv("FOODTREE_CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.Dir = getenv("FOODTREE_CACHE_DIR", cfg.Cache.Dir)
	cfg.Cache.RedisURL = getenv("FOODTREE_REDIS_URL", cfg.Cache.RedisURL)
	if v := os.Getenv("FOODTREE_CACHE_TTL"); v != "" {
		if err := cfg.Cache.TTL.UnmarshalText([]byte(v)); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "FOODTREE_CACHE_TTL")
		}
	}
	cfg.Server.Addr = getenv("FOODTREE_ADDR", cfg.Server.Addr)
	cfg.Ingest.Country = getenv("FOODTREE_INGEST_COUNTRY", cfg.Ingest.Country)
	cfg.Ingest.Root = getenv("FOODTREE_INGEST_ROOT", cfg.Ingest.Root)
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "%s", key)
	}
	return n, nil
}

func getenvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "%s", key)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultPath returns $XDG_CONFIG_HOME/foodtree/config.toml, falling back
// to ~/.config. It returns "" when no home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// defaultCacheDir returns the cache directory using XDG standard (~/.cache/foodtree/).
func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, ".cache", AppName)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
)

// isolate points the XDG directories at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, key := range []string{
		"FOODTREE_TOP_K", "FOODTREE_TRACES", "FOODTREE_RENDER_FORMAT",
		"FOODTREE_RENDER_DETAILED", "FOODTREE_RENDER_TITLE", "FOODTREE_CACHE_BACKEND",
		"FOODTREE_CACHE_DIR", "FOODTREE_REDIS_URL", "FOODTREE_CACHE_TTL",
		"FOODTREE_ADDR", "FOODTREE_INGEST_COUNTRY", "FOODTREE_INGEST_ROOT",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Analysis.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.Analysis.TopK)
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("Format = %q, want svg", cfg.Render.Format)
	}
	if cfg.Cache.Dir != filepath.Join(dir, "cache", AppName) {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}
	if cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("TTL = %v, want 24h", cfg.Cache.TTL)
	}
	if cfg.Ingest.Root != "Food Categories" {
		t.Errorf("Ingest.Root = %q", cfg.Ingest.Root)
	}
}

func TestLoad_DefaultPathFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", AppName, "config.toml"), `
[analysis]
top_k = 5
traces = ["Cola", "Brie"]

[render]
format = "png"
detailed = true

[cache]
backend = "none"
ttl = "90m"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Analysis.TopK != 5 || len(cfg.Analysis.Traces) != 2 {
		t.Errorf("Analysis = %+v", cfg.Analysis)
	}
	if cfg.Render.Format != "png" || !cfg.Render.Detailed {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Render.Scale != 2 {
		t.Errorf("Scale default lost: %v", cfg.Render.Scale)
	}
	if cfg.Cache.Backend != "none" || cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "[server]\naddr = \":9000\"\n")

	t.Setenv("FOODTREE_ADDR", "127.0.0.1:7000")
	t.Setenv("FOODTREE_TOP_K", "10")
	t.Setenv("FOODTREE_TRACES", "Cola, Tea ,")
	t.Setenv("FOODTREE_RENDER_DETAILED", "true")
	t.Setenv("FOODTREE_CACHE_TTL", "1h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" {
		t.Errorf("Addr = %q, env should win over file", cfg.Server.Addr)
	}
	if cfg.Analysis.TopK != 10 {
		t.Errorf("TopK = %d", cfg.Analysis.TopK)
	}
	if len(cfg.Analysis.Traces) != 2 || cfg.Analysis.Traces[1] != "Tea" {
		t.Errorf("Traces = %q", cfg.Analysis.Traces)
	}
	if !cfg.Render.Detailed || cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("Detailed = %v, TTL = %v", cfg.Render.Detailed, cfg.Cache.TTL)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		code    apperrors.Code
	}{
		{name: "syntax", content: "[render\n", code: apperrors.ErrCodeInvalidFormat},
		{name: "unknown key", content: "[render]\ncolour = \"red\"\n", code: apperrors.ErrCodeInvalidFormat},
		{name: "bad ttl", content: "[cache]\nttl = \"soon\"\n", code: apperrors.ErrCodeInvalidFormat},
		{name: "bad format", content: "[render]\nformat = \"gif\"\n", code: apperrors.ErrCodeInvalidInput},
		{name: "bad backend", content: "[cache]\nbackend = \"memcached\"\n", code: apperrors.ErrCodeInvalidInput},
		{name: "redis without url", content: "[cache]\nbackend = \"redis\"\n", code: apperrors.ErrCodeInvalidInput},
		{name: "bad env int", env: map[string]string{"FOODTREE_TOP_K": "many"}, code: apperrors.ErrCodeInvalidInput},
		{name: "bad env bool", env: map[string]string{"FOODTREE_RENDER_DETAILED": "maybe"}, code: apperrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "config.toml")
			writeFile(t, path, tt.content)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(path)
			if !apperrors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

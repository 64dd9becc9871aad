package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/umlpad/pkg/draft"
	"github.com/matzehuels/umlpad/pkg/render"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Render.BaseURL != render.DefaultBaseURL || cfg.Render.Format != "png" {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Drafts.ID != draft.DefaultID || cfg.Drafts.AutosaveDelay.Duration != time.Second {
		t.Errorf("Drafts = %+v", cfg.Drafts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9000"

[render]
base_url = "http://localhost:8080/plantuml"
format = "svg"
zlib = true

[drafts]
backend = "redis"
autosave_delay = "250ms"

[drafts.redis]
addr = "localhost:6379"
ttl = "720h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout.Duration != 15*time.Second {
		t.Errorf("unset ReadTimeout lost its default: %v", cfg.Server.ReadTimeout)
	}
	if cfg.Render.Format != "svg" || !cfg.Render.Zlib {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Drafts.Backend != BackendRedis || cfg.Drafts.AutosaveDelay.Duration != 250*time.Millisecond {
		t.Errorf("Drafts = %+v", cfg.Drafts)
	}
	if cfg.Drafts.Redis.TTL.Duration != 720*time.Hour {
		t.Errorf("Redis.TTL = %v", cfg.Drafts.Redis.TTL)
	}
	if cfg.Drafts.ID != draft.DefaultID {
		t.Errorf("Drafts.ID = %q", cfg.Drafts.ID)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[render\n", "load config"},
		{"unknown key", "[render]\ncolour = \"red\"\n", "unknown keys"},
		{"bad duration", "[drafts]\nautosave_delay = \"soon\"\n", "invalid duration"},
		{"bad format", "[render]\nformat = \"gif\"\n", "gif"},
		{"bad backend", "[drafts]\nbackend = \"sqlite\"\n", "sqlite"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", "cache.redis.addr"},
		{"mongo without uri", "[drafts]\nbackend = \"mongo\"\n", "drafts.mongo.uri"},
		{"bad base url", "[render]\nbase_url = \"plantuml.com\"\n", "scheme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing path should fail")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") with no file: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join("/tmp/cfg", "umlpad", "config.toml") {
		t.Errorf("DefaultPath() = %q", p)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatal(err)
	}
	out, _ := d.MarshalText()
	if string(out) != "1m30s" {
		t.Errorf("MarshalText() = %q", out)
	}
}

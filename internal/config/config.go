// Package config loads umlpad settings from a TOML file.
//
// Values missing from the file keep their defaults; command-line flags are
// applied on top by the caller. The default location is
// $XDG_CONFIG_HOME/umlpad/config.toml (or ~/.config/umlpad/config.toml).
//
// Example file:
//
//	[render]
//	base_url = "http://localhost:8080/plantuml"
//	format   = "svg"
//
//	[drafts]
//	backend = "redis"
//	autosave_delay = "2s"
//
//	[drafts.redis]
//	addr = "localhost:6379"
//	ttl  = "720h"
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/umlpad/pkg/draft"
	"github.com/matzehuels/umlpad/pkg/errors"
	"github.com/matzehuels/umlpad/pkg/render"
)

// Backend names.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the complete umlpad configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
	Drafts DraftConfig  `toml:"drafts"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures `umlpad serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// RenderConfig selects the rendering service and encoder options.
type RenderConfig struct {
	BaseURL string `toml:"base_url"`
	Format  string `toml:"format"`
	Zlib    bool   `toml:"zlib"`
}

// DraftConfig selects where drafts are stored.
type DraftConfig struct {
	Backend       string      `toml:"backend"`
	Dir           string      `toml:"dir"`
	ID            string      `toml:"id"`
	AutosaveDelay Duration    `toml:"autosave_delay"`
	Redis         RedisConfig `toml:"redis"`
	Mongo         MongoConfig `toml:"mongo"`
}

// CacheConfig selects the token cache.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig holds connection settings for a Redis backend.
type RedisConfig struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// MongoConfig holds connection settings for a MongoDB backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Duration is a time.Duration written as a Go duration string ("1s").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{15 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Render: RenderConfig{
			BaseURL: render.DefaultBaseURL,
			Format:  render.DefaultFormat,
		},
		Drafts: DraftConfig{
			Backend:       BackendFile,
			ID:            draft.DefaultID,
			AutosaveDelay: Duration{draft.AutosaveDelay},
			Mongo: MongoConfig{
				Database:   draft.DefaultMongoDatabase,
				Collection: draft.DefaultMongoCollection,
			},
		},
		Cache: CacheConfig{
			Backend: BackendFile,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "umlpad", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "umlpad", "config.toml"), nil
}

// Load reads the config file at path over the defaults. An empty path
// loads DefaultPath and tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.Render.BaseURL); err != nil {
		return err
	}
	if err := errors.ValidateFormat(c.Render.Format); err != nil {
		return err
	}
	if err := errors.ValidateDraftID(c.Drafts.ID); err != nil {
		return err
	}

	switch c.Drafts.Backend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if c.Drafts.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "drafts.redis.addr is required for the redis backend")
		}
	case BackendMongo:
		if c.Drafts.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "drafts.mongo.uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown drafts.backend %q", c.Drafts.Backend)
	}

	switch c.Cache.Backend {
	case BackendNone, BackendFile:
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis.addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache.backend %q", c.Cache.Backend)
	}

	if c.Drafts.AutosaveDelay.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "drafts.autosave_delay must not be negative")
	}
	return nil
}

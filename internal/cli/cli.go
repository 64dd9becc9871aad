package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/umlpad/internal/config"
	"github.com/matzehuels/umlpad/pkg/buildinfo"
	"github.com/matzehuels/umlpad/pkg/cache"
	"github.com/matzehuels/umlpad/pkg/draft"
	"github.com/matzehuels/umlpad/pkg/httputil"
	"github.com/matzehuels/umlpad/pkg/plantuml"
	"github.com/matzehuels/umlpad/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "umlpad"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config     config.Config
	configPath string

	stdin io.Reader
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		stdin:  os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Component Factories
// =============================================================================

// renderFlags are the flags shared by commands that build a renderer.
type renderFlags struct {
	baseURL string
	format  string
	zlib    bool
	noCache bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.baseURL, "server", "", "rendering service base URL (default from config)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "image format: png, svg, txt (default from config)")
	cmd.Flags().BoolVar(&f.zlib, "zlib", false, "wrap the deflate stream in a zlib container")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the token cache")
}

// newRenderer builds a renderer from the config with flag overrides.
// The returned cleanup closes the cache.
func (c *CLI) newRenderer(ctx context.Context, f renderFlags) (*render.Renderer, func(), error) {
	rc := c.Config.Render
	if f.baseURL != "" {
		rc.BaseURL = f.baseURL
	}
	if f.format != "" {
		rc.Format = f.format
	}
	if f.zlib {
		rc.Zlib = true
	}

	tc, err := c.newCache(ctx, f.noCache)
	if err != nil {
		return nil, nil, err
	}

	r, err := render.New(render.Options{
		BaseURL: rc.BaseURL,
		Format:  rc.Format,
		Encoder: plantuml.Encoder{Zlib: rc.Zlib},
		Cache:   tc,
		Keyer:   cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":"),
		Client:  httputil.NewClient(map[string]string{"User-Agent": buildinfo.UserAgent()}),
		Logger:  c.Logger,
	})
	if err != nil {
		_ = tc.Close()
		return nil, nil, err
	}
	return r, func() { _ = tc.Close() }, nil
}

// newCache opens the token cache selected in the config. A file cache that
// cannot be created degrades to no cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.Config.Cache
	if noCache || cc.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}

	switch cc.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cc.Redis.Addr,
			Password: cc.Redis.Password,
			DB:       cc.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("open token cache: %w", err)
		}
		return rc, nil
	default:
		dir := cc.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				c.Logger.Debug("no cache dir, caching disabled", "err", err)
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Debug("file cache unavailable, caching disabled", "dir", dir, "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// openDraftStore opens the draft backend selected in the config.
func (c *CLI) openDraftStore(ctx context.Context) (draft.Store, error) {
	dc := c.Config.Drafts
	switch dc.Backend {
	case config.BackendMemory:
		return draft.NewMemoryStore(), nil
	case config.BackendRedis:
		return draft.NewRedisStore(ctx, draft.RedisConfig{
			Addr:     dc.Redis.Addr,
			Password: dc.Redis.Password,
			DB:       dc.Redis.DB,
			Prefix:   dc.Redis.Prefix,
			TTL:      dc.Redis.TTL.Duration,
		})
	case config.BackendMongo:
		return draft.NewMongoStore(ctx, draft.MongoConfig{
			URI:        dc.Mongo.URI,
			Database:   dc.Mongo.Database,
			Collection: dc.Mongo.Collection,
		})
	default:
		return draft.NewFileStore(dc.Dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/umlpad/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// readSource reads diagram source from the file named in args, or from
// stdin when args is empty or "-".
func (c *CLI) readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// tokenFromArg accepts a bare token or a full render URL and returns the
// token.
func tokenFromArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if i := strings.LastIndex(arg, "/"+plantuml.URLPrefix); i >= 0 {
		return arg[i+1+len(plantuml.URLPrefix):]
	}
	return strings.TrimPrefix(arg, plantuml.URLPrefix)
}

package render

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlpad/pkg/cache"
	"github.com/matzehuels/umlpad/pkg/errors"
	"github.com/matzehuels/umlpad/pkg/httputil"
	"github.com/matzehuels/umlpad/pkg/observability"
	"github.com/matzehuels/umlpad/pkg/plantuml"
)

const (
	// DefaultBaseURL is the public PlantUML server.
	DefaultBaseURL = "https://www.plantuml.com/plantuml"

	// DefaultFormat is the image format requested from the server.
	DefaultFormat = "png"

	// timestampLayout matches JavaScript's Date.toISOString.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Result is the outcome of a successful render. The JSON shape is the
// response body of the render API.
type Result struct {
	URL      string   `json:"url"`
	Encoded  string   `json:"encoded"`
	Metadata Metadata `json:"metadata"`
}

// Metadata is diagnostic information about a render.
type Metadata struct {
	Timestamp    string `json:"timestamp"`
	OriginalCode string `json:"originalCode"`
}

// Options configures a Renderer. Zero values select defaults.
type Options struct {
	BaseURL string
	Format  string
	Encoder plantuml.Encoder
	Cache   cache.Cache
	Keyer   cache.Keyer
	Client  *httputil.Client
	Logger  *log.Logger
}

// Renderer builds render URLs. It is safe for concurrent use.
type Renderer struct {
	baseURL string
	format  string
	encoder plantuml.Encoder
	cache   cache.Cache
	keyer   cache.Keyer
	client  *httputil.Client
	logger  *log.Logger
	now     func() time.Time
}

// New validates opts and creates a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	if err := errors.ValidateURL(opts.BaseURL); err != nil {
		return nil, err
	}
	if err := errors.ValidateFormat(opts.Format); err != nil {
		return nil, err
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Client == nil {
		opts.Client = httputil.NewClient(nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return &Renderer{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		format:  opts.Format,
		encoder: opts.Encoder,
		cache:   opts.Cache,
		keyer:   opts.Keyer,
		client:  opts.Client,
		logger:  opts.Logger,
		now:     time.Now,
	}, nil
}

// Format returns the image format the renderer requests.
func (r *Renderer) Format() string { return r.format }

// URL returns the server URL for an encoded token.
func (r *Renderer) URL(token string) string {
	return r.baseURL + "/" + r.format + "/" + plantuml.URLPrefix + token
}

// Render encodes code and returns the render URL. Empty or whitespace-only
// code fails with INVALID_INPUT before anything is encoded. Encoding
// failures are INTERNAL_ERROR; no partial result is returned.
func (r *Renderer) Render(ctx context.Context, code string) (*Result, error) {
	if err := errors.ValidateSource(code); err != nil {
		return nil, err
	}

	token, err := r.token(ctx, code)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "Failed to generate diagram")
	}

	return &Result{
		URL:     r.URL(token),
		Encoded: token,
		Metadata: Metadata{
			Timestamp:    r.now().UTC().Format(timestampLayout),
			OriginalCode: code,
		},
	}, nil
}

// token returns the cached token for code or encodes and caches it.
// Cache failures are logged and otherwise ignored.
func (r *Renderer) token(ctx context.Context, code string) (string, error) {
	key := r.keyer.TokenKey(cache.Hash([]byte(code)), r.encoder.Key())
	hooks := observability.Cache()

	data, hit, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		r.logger.Debug("token cache read failed", "err", err)
	case hit:
		hooks.OnCacheHit(ctx, "token")
		return string(data), nil
	default:
		hooks.OnCacheMiss(ctx, "token")
	}

	start := time.Now()
	token, err := r.encoder.Encode(code)
	observability.Render().OnEncode(ctx, len(code), len(token), time.Since(start), err)
	if err != nil {
		return "", err
	}
	r.logger.Debug("encoded diagram", "bytes", len(code), "token", len(token), "duration", time.Since(start))

	if err := r.cache.Set(ctx, key, []byte(token), cache.TTLToken); err != nil {
		r.logger.Debug("token cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, "token", len(token))
	}
	return token, nil
}

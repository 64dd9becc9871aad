package viewer

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"sync"
)

// Opener launches a URL outside the process.
type Opener func(rawURL string) error

// Browser shows diagrams in the system web browser. The browser decides
// whether to reuse a tab, so a Browser stays open until Close or until the
// opener fails.
type Browser struct {
	open Opener

	mu     sync.Mutex
	closed bool
	last   string
}

// NewBrowser creates a Browser. A nil opener selects OpenURL.
func NewBrowser(open Opener) *Browser {
	if open == nil {
		open = OpenURL
	}
	return &Browser{open: open}
}

// BrowserFactory returns a Factory producing Browser surfaces.
func BrowserFactory(open Opener) Factory {
	return func(context.Context) (Surface, error) {
		return NewBrowser(open), nil
	}
}

func (b *Browser) Show(ctx context.Context, rawURL string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("browser surface closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.open(rawURL); err != nil {
		b.closed = true
		return err
	}
	b.last = rawURL
	return nil
}

// Last returns the most recently shown URL.
func (b *Browser) Last() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

var _ Surface = (*Browser)(nil)

// OpenURL opens an http(s) URL with the platform's default handler.
func OpenURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autolist/lister/internal/config"
	"autolist/lister/internal/proxy"
)

// ErrElementNotPresent is returned when a waited-for selector never appears
var ErrElementNotPresent = errors.New("element not present")

// Browser is a rendering session that can be reused across page loads
type Browser interface {
	Navigate(ctx context.Context, url string) error
	// WaitPresent polls for selector until it is present or timeout elapses
	WaitPresent(ctx context.Context, selector string, timeout time.Duration) error
	// HTML returns the current rendered document
	HTML(ctx context.Context) (string, error)
	Close() error
}

const (
	DriverChrome = "chrome"
	DriverStatic = "static"
)

// New launches the configured driver
func New(ctx context.Context, cfg config.BrowserConfig, proxies proxy.ProxySupplier) (Browser, error) {
	proxyURL := ""
	if proxies != nil {
		proxyURL = proxies.Get()
	}

	switch cfg.Driver {
	case DriverChrome, "":
		return NewChrome(ctx, cfg, proxyURL)
	case DriverStatic:
		return NewStatic(cfg, proxyURL)
	default:
		return nil, fmt.Errorf("unknown browser driver %q", cfg.Driver)
	}
}

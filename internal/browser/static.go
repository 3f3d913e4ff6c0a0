package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"autolist/lister/internal/config"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	log "github.com/sirupsen/logrus"
)

// staticBrowser fetches pages without running scripts. Useful when Chrome is unavailable
// and for pages that render server side.
type staticBrowser struct {
	collector *colly.Collector
	html      string
}

func NewStatic(cfg config.BrowserConfig, proxyURL string) (Browser, error) {
	opts := []colly.CollectorOption{colly.AllowURLRevisit()}
	if cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(cfg.UserAgent))
	}
	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(time.Duration(max(1, cfg.WaitTimeout)) * 3 * time.Second)

	if proxyURL != "" {
		if err := c.SetProxy(proxyURL); err != nil {
			return nil, fmt.Errorf("failed to set proxy %s: %w", proxyURL, err)
		}
		log.Infof("🔗 Static fetcher using proxy: %s", proxyURL)
	}

	b := &staticBrowser{collector: c}
	c.OnResponse(func(r *colly.Response) {
		b.html = string(r.Body)
	})

	return b, nil
}

func (b *staticBrowser) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.html = ""
	if err := b.collector.Visit(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	b.collector.Wait()
	return nil
}

// WaitPresent checks the fetched document once, nothing renders after the fetch
func (b *staticBrowser) WaitPresent(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.html))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}
	if doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotPresent, selector)
	}
	return nil
}

func (b *staticBrowser) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if b.html == "" {
		return "", fmt.Errorf("no page loaded")
	}
	return b.html, nil
}

func (b *staticBrowser) Close() error {
	return nil
}

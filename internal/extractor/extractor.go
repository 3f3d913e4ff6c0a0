package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"autolist/lister/internal/browser"
	"autolist/lister/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// ErrTitleNotFound means the page never showed a product title, so it is not a product page
var ErrTitleNotFound = errors.New("product title not found")

const titleSelector = "#productTitle"

var (
	priceField = Field{
		Name:       "price",
		Strategies: []Strategy{splitPrice, offscreenPrice},
		Sentinel:   domain.PriceNotFound,
	}
	descriptionField = Field{
		Name:       "description",
		Strategies: []Strategy{byBlock("#productDescription"), byBlock("#feature-bullets")},
		Sentinel:   domain.DescriptionNotFound,
	}
	attributeStrategies = []AttributeStrategy{detailBullets, techSpecTable}
)

type Extractor interface {
	// Extract loads url in the browser session and reads a product record from it
	Extract(ctx context.Context, b browser.Browser, url string) (*domain.ProductRecord, error)
}

type extractor struct {
	waitTimeout time.Duration
}

func New(waitTimeout time.Duration) Extractor {
	return &extractor{waitTimeout: waitTimeout}
}

func (e *extractor) Extract(ctx context.Context, b browser.Browser, url string) (*domain.ProductRecord, error) {
	log.Infof("🔍 Scraping %s", url)

	if err := b.Navigate(ctx, url); err != nil {
		return nil, err
	}

	if err := b.WaitPresent(ctx, titleSelector, e.waitTimeout); err != nil {
		if errors.Is(err, browser.ErrElementNotPresent) {
			return nil, fmt.Errorf("%w: %s", ErrTitleNotFound, url)
		}
		return nil, err
	}

	html, err := b.HTML(ctx)
	if err != nil {
		return nil, err
	}

	record, err := Parse(html, url)
	if err != nil {
		return nil, err
	}

	log.Infof("✅ Scraped %q: price %s, %d attributes, %d images", record.Title, record.Price, len(record.Attributes), len(record.Images))
	return record, nil
}

// Parse reads a product record from a rendered page. Only the title is required,
// every other field falls back to its sentinel.
func Parse(html, url string) (*domain.ProductRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title, ok := textOf(doc, titleSelector)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTitleNotFound, url)
	}

	record := &domain.ProductRecord{
		SourceURL: url,
		Title:     title,
		ScrapedAt: time.Now(),
	}

	for _, field := range []struct {
		field Field
		dst   *string
	}{
		{priceField, &record.Price},
		{descriptionField, &record.Description},
	} {
		value, found := field.field.Resolve(doc)
		if !found {
			log.Warnf("⚠️ No %s found on %s", field.field.Name, url)
		}
		*field.dst = value
	}

	record.Attributes = extractAttributes(doc)
	if _, failed := record.Attributes[domain.AttributeErrorKey]; failed {
		log.Warnf("⚠️ No product details found on %s", url)
	}

	record.Images = collectImages(doc)
	if len(record.Images) == 0 {
		log.Warnf("⚠️ No images found on %s", url)
	}

	return record, nil
}

func extractAttributes(doc *goquery.Document) map[string]string {
	for _, strategy := range attributeStrategies {
		if attrs := strategy(doc); len(attrs) > 0 {
			return attrs
		}
	}
	return map[string]string{domain.AttributeErrorKey: domain.AttributeErrorValue}
}

package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"autolist/lister/internal/browser"
	"autolist/lister/internal/category"
	"autolist/lister/internal/client"
	"autolist/lister/internal/config"
	"autolist/lister/internal/credentials"
	"autolist/lister/internal/domain"
	"autolist/lister/internal/extractor"
	"autolist/lister/internal/listing"
	"autolist/lister/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetPage = `<html><body>
<span id="productTitle">Widget</span>
<span class="a-price-whole">19.</span><span class="a-price-fraction">99</span>
<div id="productDescription">A useful widget.</div>
<div id="detailBullets_feature_div"><ul>
  <li>Product Dimensions : 10 x 6 x 2 inches; 3.44 Pounds</li>
  <li>ASIN : B000WIDGET</li>
</ul></div>
<img id="landingImage" src="https://m.media-amazon.com/images/I/71main._AC_SX300_.jpg">
<div id="altImages">
  <img src="https://m.media-amazon.com/images/I/71main._AC_US40_.jpg">
  <img src="https://m.media-amazon.com/images/I/41second._AC_US40_.jpg">
</div>
</body></html>`

type pageBrowser struct {
	html string
}

func (b *pageBrowser) Navigate(ctx context.Context, url string) error { return nil }
func (b *pageBrowser) WaitPresent(ctx context.Context, selector string, timeout time.Duration) error {
	if !strings.Contains(b.html, `id="productTitle"`) {
		return browser.ErrElementNotPresent
	}
	return nil
}
func (b *pageBrowser) HTML(ctx context.Context) (string, error) { return b.html, nil }
func (b *pageBrowser) Close() error                              { return nil }

type stubRelay struct {
	hostedURL string
	err       error
	sources   []string
}

func (r *stubRelay) Relay(ctx context.Context, sourceURL string) (*domain.HostedImage, error) {
	r.sources = append(r.sources, sourceURL)
	if r.err != nil {
		return nil, r.err
	}
	return &domain.HostedImage{SourceURL: sourceURL, URL: r.hostedURL}, nil
}

type treeFetcher map[string][]domain.Category

func (f treeFetcher) Children(ctx context.Context, categoryID string) ([]domain.Category, error) {
	children, ok := f[categoryID]
	if !ok {
		return nil, errors.New("taxonomy unavailable")
	}
	return children, nil
}

var testTree = treeFetcher{
	"":      {{ID: "293", Name: "Consumer Electronics"}},
	"293":   {{ID: "15032", Name: "Cell Phones & Accessories"}},
	"15032": {{ID: "9355", Name: "Cell Phones & Smartphones", Leaf: true}},
	"9355":  {},
}

type fixture struct {
	svc      *Service
	relay    *stubRelay
	store    credentials.Store
	requests []string
}

func newFixture(t *testing.T, ack string) *fixture {
	f := &fixture{relay: &stubRelay{hostedURL: "https://dl.dropboxusercontent.com/s/abc/x.jpg?raw=1"}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.requests = append(f.requests, string(body))
		assert.Equal(t, "AddItem", r.Header.Get("X-EBAY-API-CALL-NAME"))

		if ack == "Success" {
			io.WriteString(w, `<AddItemResponse xmlns="urn:ebay:apis:eBLBaseComponents"><Ack>Success</Ack><ItemID>110445</ItemID></AddItemResponse>`)
			return
		}
		io.WriteString(w, `<AddItemResponse xmlns="urn:ebay:apis:eBLBaseComponents"><Ack>Failure</Ack>
<Errors><ShortMessage>Short one</ShortMessage><LongMessage>Long message one.</LongMessage></Errors>
<Errors><ShortMessage>Short two</ShortMessage><LongMessage>Long message two.</LongMessage></Errors>
</AddItemResponse>`)
	}))
	t.Cleanup(server.Close)

	store := credentials.NewFileStore(filepath.Join(t.TempDir(), "ebay.yaml"))
	require.NoError(t, store.Save(map[string]string{
		"token":                 "tok",
		"appid":                 "app",
		"devid":                 "dev",
		"certid":                "cert",
		"payment_policy_id":     "pay",
		"return_policy_id":      "ret",
		"fulfillment_policy_id": "ful",
	}))
	f.store = store

	trading := client.NewTradingClient(config.TradingConfig{
		Endpoint:             server.URL + "/ws/api.dll",
		SiteID:               "0",
		CompatibilityLevel:   "1399",
		Timeout:              5,
		MaxRequestsPerSecond: 10,
	})

	sess := session.New(func(ctx context.Context) (browser.Browser, error) {
		return &pageBrowser{html: widgetPage}, nil
	}, category.NewResolver(testTree))

	f.svc = NewService(
		sess,
		extractor.New(time.Second),
		f.relay,
		listing.NewPublisher(trading, config.ListingConfig{Quantity: 1, Currency: "USD"}),
		store,
	)
	return f
}

func TestPublishEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "Success")

	require.NoError(t, f.svc.Warmup(ctx))

	record, err := f.svc.Scrape(ctx, "https://www.amazon.com/dp/B000WIDGET")
	require.NoError(t, err)
	assert.Equal(t, "Widget", record.Title)
	assert.Equal(t, "19.99", record.Price)
	assert.Len(t, record.Images, 2)

	_, err = f.svc.SelectPath(ctx, "293", "15032", "9355")
	require.NoError(t, err)

	result, err := f.svc.Publish(ctx)
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, "110445", result.ListingID)

	assert.Equal(t, []string{record.Images[0]}, f.relay.sources)
	require.Len(t, f.requests, 1)
	assert.Contains(t, f.requests[0], "<CategoryID>9355</CategoryID>")
	assert.Contains(t, f.requests[0], "<PictureURL>https://dl.dropboxusercontent.com/s/abc/x.jpg?raw=1</PictureURL>")
	assert.Contains(t, f.requests[0], "<SKU>B000WIDGET</SKU>")
	assert.Contains(t, f.requests[0], "<WeightMajor>3</WeightMajor>")
}

func TestPublishFailureMessages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "Failure")

	_, err := f.svc.Scrape(ctx, "https://www.amazon.com/dp/B000WIDGET")
	require.NoError(t, err)
	_, err = f.svc.SelectPath(ctx, "293", "15032", "9355")
	require.NoError(t, err)

	result, err := f.svc.Publish(ctx)
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, "Long message one.\nLong message two.", result.Detail())
}

func TestPublishPreconditions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "Success")

	_, err := f.svc.Publish(ctx)
	assert.ErrorIs(t, err, ErrNoRecord)

	_, err = f.svc.Scrape(ctx, "https://www.amazon.com/dp/B000WIDGET")
	require.NoError(t, err)

	_, err = f.svc.Publish(ctx)
	assert.ErrorIs(t, err, ErrNoCategory)
	assert.Empty(t, f.relay.sources)

	_, err = f.svc.SelectCategory(ctx, 0, "293")
	require.NoError(t, err)

	f.relay.hostedURL = "http://dl.dropboxusercontent.com/s/abc/x.jpg"
	_, err = f.svc.Publish(ctx)
	assert.ErrorIs(t, err, listing.ErrInsecureImageURL)
	assert.Empty(t, f.requests)

	f.relay.err = errors.New("upload failed")
	_, err = f.svc.Publish(ctx)
	assert.ErrorContains(t, err, "upload failed")
	assert.Empty(t, f.requests)
}

func TestPublishStopsOnMissingCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "Success")

	_, err := f.svc.Scrape(ctx, "https://www.amazon.com/dp/B000WIDGET")
	require.NoError(t, err)
	_, err = f.svc.SelectPath(ctx, "293", "15032", "9355")
	require.NoError(t, err)

	require.NoError(t, f.store.Save(map[string]string{"certid": "", "return_policy_id": ""}))

	_, err = f.svc.Publish(ctx)
	var missing *credentials.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"certid", "return_policy_id"}, missing.Fields)
	assert.Empty(t, f.relay.sources)
	assert.Empty(t, f.requests)
}

func TestScrapeKeepsPreviousRecordOnFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "Success")

	_, err := f.svc.Scrape(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyURL)

	first, err := f.svc.Scrape(ctx, "https://www.amazon.com/dp/B000WIDGET")
	require.NoError(t, err)

	b, err := f.svc.Session().Browser(ctx)
	require.NoError(t, err)
	b.(*pageBrowser).html = `<html><body>Robot check</body></html>`

	_, err = f.svc.Scrape(ctx, "https://www.amazon.com/errors/validateCaptcha")
	assert.ErrorIs(t, err, extractor.ErrTitleNotFound)
	assert.Same(t, first, f.svc.Session().Record())
}

func TestWarmupToleratesCategoryFailure(t *testing.T) {
	sess := session.New(func(ctx context.Context) (browser.Browser, error) {
		return &pageBrowser{}, nil
	}, category.NewResolver(treeFetcher{}))
	svc := NewService(sess, nil, nil, nil, nil)

	require.NoError(t, svc.Warmup(context.Background()))
	assert.False(t, sess.Categories().Loaded())

	failing := session.New(func(ctx context.Context) (browser.Browser, error) {
		return nil, errors.New("chrome not found")
	}, category.NewResolver(testTree))
	assert.Error(t, NewService(failing, nil, nil, nil, nil).Warmup(context.Background()))
}

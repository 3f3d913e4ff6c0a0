package browser

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autolist/lister/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticBrowser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		switch r.URL.Path {
		case "/product":
			io.WriteString(w, `<html><body><span id="productTitle">Widget</span></body></html>`)
		case "/empty":
			io.WriteString(w, `<html><body><p>nothing here</p></body></html>`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	b, err := New(context.Background(), config.BrowserConfig{Driver: DriverStatic, WaitTimeout: 1}, nil)
	require.NoError(t, err)
	defer b.Close()

	ctx := context.Background()

	require.NoError(t, b.Navigate(ctx, server.URL+"/product"))
	require.NoError(t, b.WaitPresent(ctx, "#productTitle", time.Second))
	html, err := b.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "Widget")

	// The same session is reused for the next page
	require.NoError(t, b.Navigate(ctx, server.URL+"/empty"))
	err = b.WaitPresent(ctx, "#productTitle", time.Second)
	assert.ErrorIs(t, err, ErrElementNotPresent)

	assert.Error(t, b.Navigate(ctx, server.URL+"/missing"))
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.BrowserConfig{Driver: "netscape"}, nil)
	assert.Error(t, err)
}

package proxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupplierWithoutProxies(t *testing.T) {
	s := NewProxySupplier(context.Background(), nil, "http://unused")
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.Get())
}

func TestSupplierRoundRobin(t *testing.T) {
	s := &proxySupplier{proxies: []string{"http://a:1", "http://b:2"}}

	assert.Equal(t, "http://a:1", s.Get())
	assert.Equal(t, "http://b:2", s.Get())
	assert.Equal(t, "http://a:1", s.Get())
}

func TestSupplierDropsDeadProxies(t *testing.T) {
	// A plain HTTP server acts as a forward proxy for http:// targets
	alive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer alive.Close()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	s := NewProxySupplier(context.Background(), []string{deadURL, alive.URL}, "http://example.invalid/")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, alive.URL, s.Get())
}

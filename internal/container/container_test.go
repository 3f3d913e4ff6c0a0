package container

import (
	"context"
	"testing"

	"autolist/lister/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWiresEverything(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)
	cfg.Log.Level = "debug"
	cfg.Browser.Driver = "static"

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.NotNil(t, c.Service)
	assert.NotNil(t, c.Auth)
	assert.Equal(t, 0, c.Proxies.Len())
	assert.False(t, c.Session.Categories().Loaded())
	assert.Nil(t, c.Session.Record())

	b, err := c.Session.Browser(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, b)
	assert.NoError(t, c.Close())
}

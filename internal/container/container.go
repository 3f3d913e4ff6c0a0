package container

import (
	"context"
	"time"

	"autolist/lister/internal/auth"
	"autolist/lister/internal/browser"
	"autolist/lister/internal/category"
	"autolist/lister/internal/client"
	"autolist/lister/internal/config"
	"autolist/lister/internal/credentials"
	"autolist/lister/internal/extractor"
	"autolist/lister/internal/listing"
	"autolist/lister/internal/proxy"
	"autolist/lister/internal/relay"
	"autolist/lister/internal/service"
	"autolist/lister/internal/session"
	"autolist/lister/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config      *config.Config
	Credentials credentials.Store
	Taxonomy    client.TaxonomyClient
	Trading     client.TradingClient
	Storage     storage.Storage
	Proxies     proxy.ProxySupplier
	Session     *session.Session
	Auth        *auth.Authorizer

	Service *service.Service
}

// New creates a new container with all dependencies initialized.
// Nothing here touches the network except proxy validation, the browser starts on first use.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("⚠️ Unknown log level %q, keeping %s", cfg.Log.Level, log.GetLevel())
	}

	container := &Container{
		Config: cfg,
	}

	// Initialize ProxySupplier
	container.Proxies = proxy.NewProxySupplier(ctx, cfg.Browser.Proxies, cfg.Browser.ProxyTest)

	container.Credentials = credentials.NewFileStore(cfg.Credentials.File)
	container.Taxonomy = client.NewTaxonomyClient(cfg.Taxonomy)
	container.Trading = client.NewTradingClient(cfg.Trading)
	container.Storage = storage.NewDropbox(cfg.Dropbox.TokenFile)
	container.Auth = auth.NewAuthorizer(cfg.EbayAuth, cfg.Dropbox, container.Credentials)

	resolver := category.NewResolver(
		category.NewTaxonomyFetcher(container.Taxonomy, container.Credentials, cfg.Taxonomy.MarketplaceID),
	)

	browserCfg := cfg.Browser
	proxies := container.Proxies
	container.Session = session.New(func(ctx context.Context) (browser.Browser, error) {
		return browser.New(ctx, browserCfg, proxies)
	}, resolver)

	container.Service = service.NewService(
		container.Session,
		extractor.New(time.Duration(cfg.Browser.WaitTimeout)*time.Second),
		relay.New(cfg.Relay, container.Storage, container.Proxies),
		listing.NewPublisher(container.Trading, cfg.Listing),
		container.Credentials,
	)

	log.Debug("Container initialized")
	return container, nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	if err := c.Session.Close(); err != nil {
		return err
	}

	log.Debug("Container shut down successfully")
	return nil
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Log         LogConfig         `mapstructure:"log"`
	Browser     BrowserConfig     `mapstructure:"browser"`
	Taxonomy    TaxonomyConfig    `mapstructure:"taxonomy"`
	Trading     TradingConfig     `mapstructure:"trading"`
	Listing     ListingConfig     `mapstructure:"listing"`
	Relay       RelayConfig       `mapstructure:"relay"`
	Dropbox     DropboxConfig     `mapstructure:"dropbox"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	EbayAuth    EbayAuthConfig    `mapstructure:"ebay_auth"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// BrowserConfig controls the page rendering session used by the extractor
type BrowserConfig struct {
	Driver      string   `mapstructure:"driver"` // "chrome" or "static"
	Headless    bool     `mapstructure:"headless"`
	ExecPath    string   `mapstructure:"exec_path"`
	UserAgent   string   `mapstructure:"user_agent"`
	WaitTimeout int      `mapstructure:"wait_timeout"` // Seconds
	Proxies     []string `mapstructure:"proxies"`
	ProxyTest   string   `mapstructure:"proxy_test_url"`
}

// TaxonomyConfig holds the category tree API settings
type TaxonomyConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	MarketplaceID        string `mapstructure:"marketplace_id"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// TradingConfig holds the legacy XML item-creation API settings
type TradingConfig struct {
	Endpoint             string `mapstructure:"endpoint"`
	SiteID               string `mapstructure:"site_id"`
	CompatibilityLevel   string `mapstructure:"compatibility_level"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// ListingConfig holds the fixed fields of every create-listing request
type ListingConfig struct {
	VerifyOnly      bool           `mapstructure:"verify_only"`
	ConditionID     string         `mapstructure:"condition_id"`
	Country         string         `mapstructure:"country"`
	Currency        string         `mapstructure:"currency"`
	Duration        string         `mapstructure:"duration"`
	Type            string         `mapstructure:"type"`
	PostalCode      string         `mapstructure:"postal_code"`
	Quantity        int            `mapstructure:"quantity"`
	Site            string         `mapstructure:"site"`
	ShippingPackage string         `mapstructure:"shipping_package"`
	ItemSpecifics   []ItemSpecific `mapstructure:"item_specifics"`
}

// ItemSpecific is a fixed name/value pair sent with every listing
type ItemSpecific struct {
	Name  string `mapstructure:"name"`
	Value string `mapstructure:"value"`
}

// RelayConfig controls image staging
type RelayConfig struct {
	StagingDir string `mapstructure:"staging_dir"`
	RemoteDir  string `mapstructure:"remote_dir"`
	Timeout    int    `mapstructure:"timeout"`
}

type DropboxConfig struct {
	TokenFile string `mapstructure:"token_file"`
	AppKey    string `mapstructure:"app_key"`
	AppSecret string `mapstructure:"app_secret"`
	AuthURL   string `mapstructure:"auth_url"`
	TokenURL  string `mapstructure:"token_url"`
}

type CredentialsConfig struct {
	File string `mapstructure:"file"`
}

// EbayAuthConfig holds the OAuth application used by the one-time token exchange
type EbayAuthConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	DevID        string   `mapstructure:"dev_id"`
	RuName       string   `mapstructure:"ru_name"`
	AuthURL      string   `mapstructure:"auth_url"`
	TokenURL     string   `mapstructure:"token_url"`
	Scopes       []string `mapstructure:"scopes"`
}

// Load loads configuration from config.yaml in the working directory with environment variable overrides
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom loads config.yaml from dir. A missing file leaves the defaults in place.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	v.SetEnvPrefix("autolist")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("browser.driver", "chrome")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.exec_path", "")
	v.SetDefault("browser.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("browser.wait_timeout", 10)
	v.SetDefault("browser.proxies", []string{})
	v.SetDefault("browser.proxy_test_url", "https://www.amazon.com")

	v.SetDefault("taxonomy.base_url", "https://api.ebay.com")
	v.SetDefault("taxonomy.marketplace_id", "EBAY_US")
	v.SetDefault("taxonomy.timeout", 30)
	v.SetDefault("taxonomy.max_requests_per_second", 5)

	v.SetDefault("trading.endpoint", "https://api.ebay.com/ws/api.dll")
	v.SetDefault("trading.site_id", "0")
	v.SetDefault("trading.compatibility_level", "1399")
	v.SetDefault("trading.timeout", 60)
	v.SetDefault("trading.max_requests_per_second", 1)

	v.SetDefault("listing.verify_only", false)
	v.SetDefault("listing.condition_id", "1000")
	v.SetDefault("listing.country", "US")
	v.SetDefault("listing.currency", "USD")
	v.SetDefault("listing.duration", "GTC")
	v.SetDefault("listing.type", "FixedPriceItem")
	v.SetDefault("listing.postal_code", "95125")
	v.SetDefault("listing.quantity", 1)
	v.SetDefault("listing.site", "US")
	v.SetDefault("listing.shipping_package", "PackageThickEnvelope")
	v.SetDefault("listing.item_specifics", []map[string]any{
		{"name": "Brand", "value": "Unbranded"},
		{"name": "Type", "value": "Other"},
	})

	v.SetDefault("relay.staging_dir", "amazon_images")
	v.SetDefault("relay.remote_dir", "/amazon_images")
	v.SetDefault("relay.timeout", 30)

	v.SetDefault("dropbox.token_file", "dropbox_token.txt")
	v.SetDefault("dropbox.app_key", "")
	v.SetDefault("dropbox.app_secret", "")
	v.SetDefault("dropbox.auth_url", "https://www.dropbox.com/oauth2/authorize")
	v.SetDefault("dropbox.token_url", "https://api.dropboxapi.com/oauth2/token")

	v.SetDefault("credentials.file", "ebay.yaml")

	v.SetDefault("ebay_auth.client_id", "")
	v.SetDefault("ebay_auth.client_secret", "")
	v.SetDefault("ebay_auth.dev_id", "")
	v.SetDefault("ebay_auth.ru_name", "")
	v.SetDefault("ebay_auth.auth_url", "https://auth.ebay.com/oauth2/authorize")
	v.SetDefault("ebay_auth.token_url", "https://api.ebay.com/identity/v1/oauth2/token")
	v.SetDefault("ebay_auth.scopes", []string{
		"https://api.ebay.com/oauth/api_scope",
		"https://api.ebay.com/oauth/api_scope/sell.inventory",
		"https://api.ebay.com/oauth/api_scope/sell.account",
		"https://api.ebay.com/oauth/api_scope/sell.fulfillment",
	})
}

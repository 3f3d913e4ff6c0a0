package client

import (
	"context"
	"fmt"
	"time"

	"autolist/lister/internal/config"
	"autolist/lister/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// TradingClient posts XML calls to the legacy item-creation endpoint
type TradingClient interface {
	Call(ctx context.Context, callName string, creds *domain.Credentials, body []byte) ([]byte, error)
}

type tradingClient struct {
	rl         ratelimit.Limiter
	config     config.TradingConfig
	httpClient *resty.Client
}

func NewTradingClient(cfg config.TradingConfig) TradingClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(0).
		SetHeader("Content-Type", "text/xml")

	return &tradingClient{
		rl:         ratelimit.New(max(1, cfg.MaxRequestsPerSecond)),
		config:     cfg,
		httpClient: client,
	}
}

// Call returns the raw response body. HTTP error statuses still return the body,
// the marketplace reports failures inside the document.
func (c *tradingClient) Call(ctx context.Context, callName string, creds *domain.Credentials, body []byte) ([]byte, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"X-EBAY-API-SITEID":              c.config.SiteID,
			"X-EBAY-API-COMPATIBILITY-LEVEL": c.config.CompatibilityLevel,
			"X-EBAY-API-CALL-NAME":           callName,
			"X-EBAY-API-APP-NAME":            creds.AppID,
			"X-EBAY-API-DEV-NAME":            creds.DevID,
			"X-EBAY-API-CERT-NAME":           creds.CertID,
		}).
		SetBody(body).
		Post(c.config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", callName, err)
	}

	if resp.IsError() {
		log.Warnf("⚠️ %s returned HTTP %d", callName, resp.StatusCode())
	}

	log.Debugf("%s response: %s", callName, resp.String())
	return resp.Bytes(), nil
}

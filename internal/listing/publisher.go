package listing

import (
	"context"

	"autolist/lister/internal/client"
	"autolist/lister/internal/config"
	"autolist/lister/internal/domain"

	log "github.com/sirupsen/logrus"
)

type Publisher interface {
	// Publish builds the listing and submits it. Precondition failures return before any call.
	Publish(ctx context.Context, record *domain.ProductRecord, categoryID, pictureURL string, creds *domain.Credentials) (*domain.PublishResult, error)
	// Submit sends a built listing. A marketplace rejection is a result, not an error.
	Submit(ctx context.Context, req *domain.ListingRequest) (*domain.PublishResult, error)
}

type publisher struct {
	client client.TradingClient
	config config.ListingConfig
}

func NewPublisher(c client.TradingClient, cfg config.ListingConfig) Publisher {
	return &publisher{
		client: c,
		config: cfg,
	}
}

func (p *publisher) callName() string {
	if p.config.VerifyOnly {
		return CallVerifyAddItem
	}
	return CallAddItem
}

func (p *publisher) Publish(ctx context.Context, record *domain.ProductRecord, categoryID, pictureURL string, creds *domain.Credentials) (*domain.PublishResult, error) {
	req, err := BuildRequest(record, categoryID, pictureURL, creds)
	if err != nil {
		return nil, err
	}
	return p.Submit(ctx, req)
}

func (p *publisher) Submit(ctx context.Context, req *domain.ListingRequest) (*domain.PublishResult, error) {
	callName := p.callName()

	body, err := EncodeRequest(callName, req, p.config)
	if err != nil {
		return nil, err
	}

	log.Infof("📤 Sending %s for %q in category %s at %s", callName, req.Title, req.CategoryID, req.StartPrice)

	raw, err := p.client.Call(ctx, callName, &req.Credentials, body)
	if err != nil {
		return nil, err
	}

	result := ParseResponse(raw)
	if result.OK() {
		log.Infof("✅ Listing accepted, item ID %s", result.ListingID)
	} else {
		log.Errorf("❌ Listing rejected: %s", result.Detail())
	}
	return result, nil
}

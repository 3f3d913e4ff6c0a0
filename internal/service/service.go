package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autolist/lister/internal/credentials"
	"autolist/lister/internal/domain"
	"autolist/lister/internal/extractor"
	"autolist/lister/internal/listing"
	"autolist/lister/internal/relay"
	"autolist/lister/internal/session"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoRecord   = errors.New("no product has been scraped yet")
	ErrNoCategory = errors.New("no category selected")
	ErrNoImage    = errors.New("scraped product has no image")
	ErrEmptyURL   = errors.New("product URL is empty")
)

// Service runs the user actions against one session. Each action completes before the next starts.
type Service struct {
	session     *session.Session
	extractor   extractor.Extractor
	relay       relay.Relay
	publisher   listing.Publisher
	credentials credentials.Store
}

func NewService(
	session *session.Session,
	extractor extractor.Extractor,
	relay relay.Relay,
	publisher listing.Publisher,
	credentials credentials.Store,
) *Service {
	return &Service{
		session:     session,
		extractor:   extractor,
		relay:       relay,
		publisher:   publisher,
		credentials: credentials,
	}
}

func (s *Service) Session() *session.Session {
	return s.session
}

// Warmup launches the browser and loads the root categories side by side.
// A category failure is logged and does not stop startup.
func (s *Service) Warmup(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if _, err := s.session.Browser(ctx); err != nil {
			return fmt.Errorf("failed to start browser: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := s.session.Categories().Load(ctx); err != nil {
			log.Warnf("⚠️ Categories unavailable: %v", err)
		}
		return nil
	})

	return g.Wait()
}

// Scrape extracts a product and makes it the current record. On failure the previous
// record stays in place.
func (s *Service) Scrape(ctx context.Context, url string) (*domain.ProductRecord, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrEmptyURL
	}

	b, err := s.session.Browser(ctx)
	if err != nil {
		log.Errorf("❌ Failed to start browser: %v", err)
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	record, err := s.extractor.Extract(ctx, b, url)
	if err != nil {
		log.Errorf("❌ Scrape failed: %v", err)
		return nil, err
	}

	s.session.SetRecord(record)
	return record, nil
}

// LoadCategories (re)loads the root level and clears the selection
func (s *Service) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	resolver := s.session.Categories()
	if err := resolver.Load(ctx); err != nil {
		log.Errorf("❌ %v", err)
		return nil, err
	}
	return resolver.Options(0), nil
}

func (s *Service) SelectCategory(ctx context.Context, level int, id string) ([]domain.Category, error) {
	resolver := s.session.Categories()
	if !resolver.Loaded() {
		if err := resolver.Load(ctx); err != nil {
			log.Errorf("❌ %v", err)
			return nil, err
		}
	}

	children, err := resolver.Select(ctx, level, id)
	if err != nil {
		log.Errorf("❌ Category selection failed: %v", err)
		return nil, err
	}
	return children, nil
}

func (s *Service) SelectPath(ctx context.Context, ids ...string) ([]domain.Category, error) {
	children, err := s.session.Categories().SelectPath(ctx, ids...)
	if err != nil {
		log.Errorf("❌ Category selection failed: %v", err)
		return nil, err
	}
	return children, nil
}

// Publish relays the primary image of the current record and files the listing.
// Local preconditions are checked before the image leaves the machine.
func (s *Service) Publish(ctx context.Context) (*domain.PublishResult, error) {
	record := s.session.Record()
	if record == nil {
		return nil, ErrNoRecord
	}

	creds, err := s.credentials.Load()
	if err != nil {
		return nil, err
	}
	if err := credentials.Validate(creds); err != nil {
		return nil, err
	}

	categoryID, ok := s.session.Categories().LeafCategoryID()
	if !ok {
		return nil, ErrNoCategory
	}
	if !s.session.Categories().AtLeaf() {
		log.Warnf("⚠️ Category %s still has subcategories, the marketplace may reject it", categoryID)
	}

	imageURL, ok := record.PrimaryImage()
	if !ok {
		return nil, ErrNoImage
	}

	hosted, err := s.relay.Relay(ctx, imageURL)
	if err != nil {
		log.Errorf("❌ Image relay failed: %v", err)
		return nil, err
	}

	result, err := s.publisher.Publish(ctx, record, categoryID, hosted.URL, creds)
	if err != nil {
		log.Errorf("❌ Publish failed: %v", err)
		return nil, err
	}
	return result, nil
}

package session

import (
	"context"
	"sync"

	"autolist/lister/internal/browser"
	"autolist/lister/internal/category"
	"autolist/lister/internal/domain"

	log "github.com/sirupsen/logrus"
)

// BrowserFactory launches a browser session on first use
type BrowserFactory func(ctx context.Context) (browser.Browser, error)

// Session owns the mutable state of one run: the current record, the category path
// and the browser. It is passed explicitly to every action.
type Session struct {
	newBrowser BrowserFactory
	categories *category.Resolver

	mu      sync.Mutex
	browser browser.Browser
	record  *domain.ProductRecord
}

func New(newBrowser BrowserFactory, categories *category.Resolver) *Session {
	return &Session{
		newBrowser: newBrowser,
		categories: categories,
	}
}

// Browser returns the session browser, launching it the first time
func (s *Session) Browser(ctx context.Context) (browser.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		return s.browser, nil
	}

	b, err := s.newBrowser(ctx)
	if err != nil {
		return nil, err
	}
	s.browser = b
	return b, nil
}

func (s *Session) Categories() *category.Resolver {
	return s.categories
}

func (s *Session) Record() *domain.ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// SetRecord replaces the current record wholesale
func (s *Session) SetRecord(record *domain.ProductRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = record
}

// Close terminates the browser if one was launched. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser == nil {
		return nil
	}

	err := s.browser.Close()
	s.browser = nil
	if err != nil {
		log.Warnf("⚠️ Failed to close browser: %v", err)
	}
	return err
}

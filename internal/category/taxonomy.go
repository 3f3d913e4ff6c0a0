package category

import (
	"context"
	"fmt"

	"autolist/lister/internal/client"
	"autolist/lister/internal/domain"
)

// TokenProvider supplies the bearer token for taxonomy calls
type TokenProvider interface {
	Token() (string, error)
}

type taxonomyFetcher struct {
	client        client.TaxonomyClient
	tokens        TokenProvider
	marketplaceID string
	treeID        string
}

// NewTaxonomyFetcher reads categories from the marketplace taxonomy API.
// The token is read on every call so a refreshed credential file is picked up.
func NewTaxonomyFetcher(c client.TaxonomyClient, tokens TokenProvider, marketplaceID string) Fetcher {
	return &taxonomyFetcher{
		client:        c,
		tokens:        tokens,
		marketplaceID: marketplaceID,
	}
}

func (f *taxonomyFetcher) Children(ctx context.Context, categoryID string) ([]domain.Category, error) {
	token, err := f.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read marketplace token: %w", err)
	}

	if f.treeID == "" {
		treeID, err := f.client.GetDefaultCategoryTreeID(ctx, token, f.marketplaceID)
		if err != nil {
			return nil, err
		}
		f.treeID = treeID
	}

	if categoryID == "" {
		return f.client.GetRootCategories(ctx, token, f.treeID)
	}
	return f.client.GetSubcategories(ctx, token, f.treeID, categoryID)
}

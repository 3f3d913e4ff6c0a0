package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"autolist/lister/internal/config"
	"autolist/lister/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type TaxonomyClient interface {
	GetDefaultCategoryTreeID(ctx context.Context, token, marketplaceID string) (string, error)
	GetRootCategories(ctx context.Context, token, treeID string) ([]domain.Category, error)
	GetSubcategories(ctx context.Context, token, treeID, categoryID string) ([]domain.Category, error)
}

type categoryTreeNode struct {
	Category struct {
		CategoryID   string `json:"categoryId"`
		CategoryName string `json:"categoryName"`
	} `json:"category"`
	LeafCategoryTreeNode   bool               `json:"leafCategoryTreeNode"`
	ChildCategoryTreeNodes []categoryTreeNode `json:"childCategoryTreeNodes"`
}

type categoryTreeResponse struct {
	CategoryTreeID      string            `json:"categoryTreeId"`
	RootCategoryNode    *categoryTreeNode `json:"rootCategoryNode"`
	CategorySubtreeNode *categoryTreeNode `json:"categorySubtreeNode"`
}

type taxonomyClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	httpClient *resty.Client
}

func NewTaxonomyClient(cfg config.TaxonomyConfig) TaxonomyClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &taxonomyClient{
		rl:         ratelimit.New(max(1, cfg.MaxRequestsPerSecond)),
		baseURL:    cfg.BaseURL,
		httpClient: client,
	}
}

func (c *taxonomyClient) GetDefaultCategoryTreeID(ctx context.Context, token, marketplaceID string) (string, error) {
	url := fmt.Sprintf("%s/commerce/taxonomy/v1/get_default_category_tree_id?marketplace_id=%s", c.baseURL, marketplaceID)

	var tree categoryTreeResponse
	if err := c.getJSON(ctx, token, url, &tree); err != nil {
		return "", fmt.Errorf("failed to get category tree ID: %w", err)
	}
	if tree.CategoryTreeID == "" {
		return "", fmt.Errorf("failed to get category tree ID: empty categoryTreeId in response")
	}

	log.Debugf("Default category tree for %s is %s", marketplaceID, tree.CategoryTreeID)
	return tree.CategoryTreeID, nil
}

func (c *taxonomyClient) GetRootCategories(ctx context.Context, token, treeID string) ([]domain.Category, error) {
	url := fmt.Sprintf("%s/commerce/taxonomy/v1/category_tree/%s", c.baseURL, treeID)

	var tree categoryTreeResponse
	if err := c.getJSON(ctx, token, url, &tree); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	if tree.RootCategoryNode == nil {
		return nil, fmt.Errorf("failed to get categories: response has no rootCategoryNode")
	}

	return toCategories(tree.RootCategoryNode.ChildCategoryTreeNodes), nil
}

func (c *taxonomyClient) GetSubcategories(ctx context.Context, token, treeID, categoryID string) ([]domain.Category, error) {
	url := fmt.Sprintf("%s/commerce/taxonomy/v1/category_tree/%s/get_category_subtree?category_id=%s", c.baseURL, treeID, categoryID)

	var tree categoryTreeResponse
	if err := c.getJSON(ctx, token, url, &tree); err != nil {
		return nil, fmt.Errorf("failed to get subcategories of %s: %w", categoryID, err)
	}
	if tree.CategorySubtreeNode == nil {
		return nil, fmt.Errorf("failed to get subcategories of %s: response has no categorySubtreeNode", categoryID)
	}

	return toCategories(tree.CategorySubtreeNode.ChildCategoryTreeNodes), nil
}

func (c *taxonomyClient) getJSON(ctx context.Context, token, url string, out any) error {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.String())
	}

	if err := json.Unmarshal(resp.Bytes(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func toCategories(nodes []categoryTreeNode) []domain.Category {
	categories := make([]domain.Category, 0, len(nodes))
	for _, node := range nodes {
		categories = append(categories, domain.Category{
			ID:   node.Category.CategoryID,
			Name: node.Category.CategoryName,
			Leaf: node.LeafCategoryTreeNode,
		})
	}
	return categories
}

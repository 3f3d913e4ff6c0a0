package domain

import "time"

// Sentinel values substituted when a soft field cannot be scraped
const (
	PriceNotFound       = "Price not found"
	DescriptionNotFound = "Description not found"

	AttributeErrorKey   = "Error"
	AttributeErrorValue = "Could not fetch product details"
)

// Attribute keys the publisher reads from a scraped record
const (
	AttributeDimensions = "Product Dimensions"
	AttributeWeight     = "Item Weight"
	AttributeASIN       = "ASIN"
)

// ProductRecord is the result of one scrape. It is never merged, only replaced.
type ProductRecord struct {
	SourceURL   string            `json:"source_url"`
	Title       string            `json:"title"`
	Price       string            `json:"price"`
	Description string            `json:"description"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Images      []string          `json:"images,omitempty"` // First entry is the primary image
	ScrapedAt   time.Time         `json:"scraped_at"`
}

// PrimaryImage returns the first image URL, if any
func (p *ProductRecord) PrimaryImage() (string, bool) {
	if p == nil || len(p.Images) == 0 {
		return "", false
	}
	return p.Images[0], true
}

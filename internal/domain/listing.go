package domain

// PackageDimensions in inches, kept as the scraped tokens
type PackageDimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Depth  string `json:"depth"`
}

func (d PackageDimensions) String() string {
	return d.Length + " x " + d.Width + " x " + d.Depth
}

// Credentials holds the marketplace identity and seller policy ids
type Credentials struct {
	Token               string `mapstructure:"token" json:"-"`
	AppID               string `mapstructure:"appid" json:"appid"`
	DevID               string `mapstructure:"devid" json:"devid"`
	CertID              string `mapstructure:"certid" json:"-"`
	PaymentPolicyID     string `mapstructure:"payment_policy_id" json:"payment_policy_id"`
	ReturnPolicyID      string `mapstructure:"return_policy_id" json:"return_policy_id"`
	FulfillmentPolicyID string `mapstructure:"fulfillment_policy_id" json:"fulfillment_policy_id"`
}

// ListingRequest is derived from a record, a leaf category and a hosted image.
// It is built once per publish and discarded after submission.
type ListingRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	CategoryID  string            `json:"category_id"`
	StartPrice  string            `json:"start_price"`
	PictureURL  string            `json:"picture_url"`
	SKU         string            `json:"sku,omitempty"`
	Dimensions  PackageDimensions `json:"dimensions"`
	WeightMajor int               `json:"weight_major"` // Pounds
	Credentials Credentials       `json:"credentials"`
}

package listing

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"autolist/lister/internal/config"
	"autolist/lister/internal/credentials"
	"autolist/lister/internal/domain"
)

// ErrInsecureImageURL is returned for picture URLs the marketplace will not accept
var ErrInsecureImageURL = errors.New("image URL must use https")

const tradingNamespace = "urn:ebay:apis:eBLBaseComponents"

// Trading call names
const (
	CallAddItem       = "AddItem"
	CallVerifyAddItem = "VerifyAddItem"
)

// ValidateImageURL accepts absolute https URLs only
func ValidateImageURL(pictureURL string) error {
	u, err := url.Parse(pictureURL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInsecureImageURL, pictureURL)
	}
	return nil
}

// BuildRequest derives a listing from a scraped record. Every precondition is checked here,
// nothing is sent when one fails.
func BuildRequest(record *domain.ProductRecord, categoryID, pictureURL string, creds *domain.Credentials) (*domain.ListingRequest, error) {
	if record == nil {
		return nil, errors.New("no product record to list")
	}
	if creds == nil {
		return nil, &credentials.MissingFieldsError{Fields: []string{credentials.KeyToken}}
	}
	if err := credentials.Validate(creds); err != nil {
		return nil, err
	}
	if err := ValidateImageURL(pictureURL); err != nil {
		return nil, err
	}
	if strings.TrimSpace(categoryID) == "" {
		return nil, errors.New("no leaf category selected")
	}

	return &domain.ListingRequest{
		Title:       TruncateTitle(record.Title),
		Description: record.Description,
		CategoryID:  categoryID,
		StartPrice:  NormalizePrice(record.Price),
		PictureURL:  pictureURL,
		SKU:         SKU(record.Attributes),
		Dimensions:  ParseDimensions(record.Attributes),
		WeightMajor: ParseWeight(record.Attributes),
		Credentials: *creds,
	}, nil
}

type cdata struct {
	Value string `xml:",cdata"`
}

type requesterCredentials struct {
	EBayAuthToken string `xml:"eBayAuthToken"`
}

type addItemRequest struct {
	XMLName              xml.Name
	RequesterCredentials requesterCredentials `xml:"RequesterCredentials"`
	ErrorLanguage        string               `xml:"ErrorLanguage"`
	WarningLevel         string               `xml:"WarningLevel"`
	Item                 item                 `xml:"Item"`
}

type item struct {
	Title                  string                 `xml:"Title"`
	Description            cdata                  `xml:"Description"`
	PrimaryCategoryID      string                 `xml:"PrimaryCategory>CategoryID"`
	StartPrice             string                 `xml:"StartPrice"`
	CategoryMappingAllowed bool                   `xml:"CategoryMappingAllowed"`
	ConditionID            string                 `xml:"ConditionID"`
	Country                string                 `xml:"Country"`
	Currency               string                 `xml:"Currency"`
	ListingDuration        string                 `xml:"ListingDuration"`
	ListingType            string                 `xml:"ListingType"`
	PictureDetails         pictureDetails         `xml:"PictureDetails"`
	PostalCode             string                 `xml:"PostalCode"`
	Quantity               int                    `xml:"Quantity"`
	SKU                    string                 `xml:"SKU,omitempty"`
	ItemSpecifics          []nameValue            `xml:"ItemSpecifics>NameValueList"`
	ShippingPackageDetails shippingPackageDetails `xml:"ShippingPackageDetails"`
	SellerProfiles         sellerProfiles         `xml:"SellerProfiles"`
	Site                   string                 `xml:"Site"`
}

type pictureDetails struct {
	PhotoDisplay string `xml:"PhotoDisplay"`
	GalleryType  string `xml:"GalleryType"`
	PictureURL   string `xml:"PictureURL"`
}

type nameValue struct {
	Name  string `xml:"Name"`
	Value string `xml:"Value"`
}

type shippingPackageDetails struct {
	MeasurementUnit string `xml:"MeasurementUnit"`
	PackageDepth    string `xml:"PackageDepth"`
	PackageLength   string `xml:"PackageLength"`
	PackageWidth    string `xml:"PackageWidth"`
	ShippingPackage string `xml:"ShippingPackage"`
	WeightMajor     int    `xml:"WeightMajor"`
	WeightMinor     int    `xml:"WeightMinor"`
}

type sellerProfiles struct {
	PaymentProfileID  string `xml:"SellerPaymentProfile>PaymentProfileID"`
	ReturnProfileID   string `xml:"SellerReturnProfile>ReturnProfileID"`
	ShippingProfileID string `xml:"SellerShippingProfile>ShippingProfileID"`
}

// xmlText drops runes that are not legal XML characters. CDATA sections are written
// verbatim, so the encoder cannot replace them there.
func xmlText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20, r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}

// EncodeRequest renders the listing as a trading call document. Free text is escaped
// by the encoder, the description travels as CDATA.
func EncodeRequest(callName string, req *domain.ListingRequest, cfg config.ListingConfig) ([]byte, error) {
	specifics := make([]nameValue, 0, len(cfg.ItemSpecifics))
	for _, s := range cfg.ItemSpecifics {
		specifics = append(specifics, nameValue{Name: s.Name, Value: s.Value})
	}

	doc := addItemRequest{
		XMLName:              xml.Name{Space: tradingNamespace, Local: callName + "Request"},
		RequesterCredentials: requesterCredentials{EBayAuthToken: req.Credentials.Token},
		ErrorLanguage:        "en_US",
		WarningLevel:         "High",
		Item: item{
			Title:                  xmlText(req.Title),
			Description:            cdata{Value: xmlText(req.Description)},
			PrimaryCategoryID:      req.CategoryID,
			StartPrice:             req.StartPrice,
			CategoryMappingAllowed: true,
			ConditionID:            cfg.ConditionID,
			Country:                cfg.Country,
			Currency:               cfg.Currency,
			ListingDuration:        cfg.Duration,
			ListingType:            cfg.Type,
			PictureDetails: pictureDetails{
				PhotoDisplay: "PicturePack",
				GalleryType:  "Gallery",
				PictureURL:   req.PictureURL,
			},
			PostalCode:    cfg.PostalCode,
			Quantity:      cfg.Quantity,
			SKU:           req.SKU,
			ItemSpecifics: specifics,
			ShippingPackageDetails: shippingPackageDetails{
				MeasurementUnit: "English",
				PackageDepth:    req.Dimensions.Depth,
				PackageLength:   req.Dimensions.Length,
				PackageWidth:    req.Dimensions.Width,
				ShippingPackage: cfg.ShippingPackage,
				WeightMajor:     req.WeightMajor,
				WeightMinor:     0,
			},
			SellerProfiles: sellerProfiles{
				PaymentProfileID:  req.Credentials.PaymentPolicyID,
				ReturnProfileID:   req.Credentials.ReturnPolicyID,
				ShippingProfileID: req.Credentials.FulfillmentPolicyID,
			},
			Site: cfg.Site,
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", callName, err)
	}
	return append([]byte(xml.Header), body...), nil
}

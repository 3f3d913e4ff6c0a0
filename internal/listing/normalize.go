package listing

import (
	"regexp"
	"strings"

	"autolist/lister/internal/domain"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPrice          = "99.99"
	DefaultWeight         = 1
	DefaultDimensionValue = "12"
	maxTitleRunes         = 80
)

var (
	priceJunk      = regexp.MustCompile(`[^0-9.\-]`)
	numberToken    = regexp.MustCompile(`\d+\.?\d*`)
	poundsToken    = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*pounds?`)
	ouncesToken    = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*ounces?`)
	ouncesPerPound = decimal.NewFromInt(16)
)

// NormalizePrice turns a scraped price into a two-decimal string, "$1,299.99" -> "1299.99"
func NormalizePrice(raw string) string {
	cleaned := priceJunk.ReplaceAllString(raw, "")
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		log.Warnf("⚠️ Could not parse price %q, using default %s", raw, DefaultPrice)
		return DefaultPrice
	}
	return price.StringFixed(2)
}

// ParseDimensions takes the first three numbers of the product dimensions in the order they appear
func ParseDimensions(attrs map[string]string) domain.PackageDimensions {
	tokens := numberToken.FindAllString(attrs[domain.AttributeDimensions], 3)
	if len(tokens) < 3 {
		log.Warnf("⚠️ No usable package dimensions, using %s x %s x %s", DefaultDimensionValue, DefaultDimensionValue, DefaultDimensionValue)
		return domain.PackageDimensions{
			Length: DefaultDimensionValue,
			Width:  DefaultDimensionValue,
			Depth:  DefaultDimensionValue,
		}
	}
	return domain.PackageDimensions{Length: tokens[0], Width: tokens[1], Depth: tokens[2]}
}

// ParseWeight returns whole pounds rounded half up. The dimensions line is tried first,
// then the item weight line.
func ParseWeight(attrs map[string]string) int {
	if pounds, ok := matchWeight(poundsToken, attrs[domain.AttributeDimensions]); ok {
		return roundPounds(pounds)
	}
	if pounds, ok := matchWeight(poundsToken, attrs[domain.AttributeWeight]); ok {
		return roundPounds(pounds)
	}
	if ounces, ok := matchWeight(ouncesToken, attrs[domain.AttributeWeight]); ok {
		return roundPounds(ounces.Div(ouncesPerPound))
	}

	log.Warnf("⚠️ No package weight found, using %d lb", DefaultWeight)
	return DefaultWeight
}

func matchWeight(re *regexp.Regexp, text string) (decimal.Decimal, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(strings.TrimSuffix(m[1], "."))
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}

func roundPounds(pounds decimal.Decimal) int {
	return int(pounds.Round(0).IntPart())
}

// TruncateTitle cuts the title to the marketplace limit without splitting a character
func TruncateTitle(title string) string {
	title = strings.TrimSpace(title)
	runes := []rune(title)
	if len(runes) <= maxTitleRunes {
		return title
	}
	return string(runes[:maxTitleRunes])
}

// SKU is the product ASIN taken verbatim, empty when absent
func SKU(attrs map[string]string) string {
	return attrs[domain.AttributeASIN]
}

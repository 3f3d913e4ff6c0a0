package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy tries to read one field from the document
type Strategy func(doc *goquery.Document) (string, bool)

// Field is an ordered list of strategies. The first one that succeeds wins,
// otherwise Sentinel is used.
type Field struct {
	Name       string
	Strategies []Strategy
	Sentinel   string
}

func (f Field) Resolve(doc *goquery.Document) (string, bool) {
	for _, strategy := range f.Strategies {
		if value, ok := strategy(doc); ok {
			return value, true
		}
	}
	return f.Sentinel, false
}

// AttributeStrategy reads key/value pairs. An empty map counts as failure.
type AttributeStrategy func(doc *goquery.Document) map[string]string

var bidiMarks = strings.NewReplacer("\u200e", "", "\u200f", "")

var currencyCleaner = strings.NewReplacer("$", "", ",", "", "£", "", "€", "", " ", "")

// textOf returns the trimmed text of the first match
func textOf(doc *goquery.Document, selector string) (string, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	text := strings.TrimSpace(sel.Text())
	return text, text != ""
}

// byText succeeds with the first match's text
func byText(selector string) Strategy {
	return func(doc *goquery.Document) (string, bool) {
		return textOf(doc, selector)
	}
}

// byBlock succeeds with the first match's text, one trimmed line per non-empty line
func byBlock(selector string) Strategy {
	return func(doc *goquery.Document) (string, bool) {
		text, ok := textOf(doc, selector)
		if !ok {
			return "", false
		}
		text = normalizeLines(text)
		return text, text != ""
	}
}

// splitPrice joins the whole and fraction spans. The whole span often carries its own
// decimal mark, which is dropped.
func splitPrice(doc *goquery.Document) (string, bool) {
	whole, ok := textOf(doc, ".a-price-whole")
	if !ok {
		return "", false
	}
	fraction, ok := textOf(doc, ".a-price-fraction")
	if !ok {
		return "", false
	}
	whole = strings.TrimRight(whole, ".")
	return whole + "." + fraction, true
}

// offscreenPrice takes the first screen-reader price that is not empty
func offscreenPrice(doc *goquery.Document) (string, bool) {
	price := ""
	doc.Find(".a-offscreen").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		price = strings.TrimSpace(currencyCleaner.Replace(sel.Text()))
		return price == ""
	})
	return price, price != ""
}

// detailBullets reads "Key : Value" list items
func detailBullets(doc *goquery.Document) map[string]string {
	attrs := make(map[string]string)
	doc.Find("#detailBullets_feature_div li").Each(func(i int, li *goquery.Selection) {
		text := strings.Join(strings.Fields(bidiMarks.Replace(li.Text())), " ")
		key, value, found := strings.Cut(text, ":")
		if !found {
			return
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		attrs[key] = strings.TrimSpace(value)
	})
	return attrs
}

// techSpecTable reads the th/td rows of the technical details table
func techSpecTable(doc *goquery.Document) map[string]string {
	attrs := make(map[string]string)
	doc.Find("#productDetails_techSpec_section_1 tr").Each(func(i int, tr *goquery.Selection) {
		key := strings.TrimSpace(bidiMarks.Replace(tr.Find("th").First().Text()))
		value := strings.Join(strings.Fields(bidiMarks.Replace(tr.Find("td").First().Text())), " ")
		if key == "" {
			return
		}
		attrs[key] = value
	})
	return attrs
}

func normalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

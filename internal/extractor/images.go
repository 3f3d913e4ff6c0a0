package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const largeImageSuffix = "._AC_SL1500_.jpg"

var placeholderMarkers = []string{"sprite", "grey-pixel", "transparent-pixel"}

// collectImages returns the primary image first, then thumbnails, with no duplicates
func collectImages(doc *goquery.Document) []string {
	images := make([]string, 0)
	seen := make(map[string]struct{})

	add := func(raw string) {
		url, ok := largeImageURL(raw)
		if !ok {
			return
		}
		if _, dup := seen[url]; dup {
			return
		}
		seen[url] = struct{}{}
		images = append(images, url)
	}

	// src is often a lazy-load placeholder, the real image then sits in data-old-hires
	landing := doc.Find("#landingImage").First()
	primary := landing.AttrOr("src", "")
	if _, ok := largeImageURL(primary); !ok {
		primary = landing.AttrOr("data-old-hires", "")
	}
	add(primary)

	doc.Find("#altImages img").Each(func(i int, img *goquery.Selection) {
		add(img.AttrOr("src", ""))
	})

	return images
}

// largeImageURL rewrites a thumbnail URL to its full-size variant.
// URLs without a size segment are kept as they are.
func largeImageURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "data:") {
		return "", false
	}
	for _, marker := range placeholderMarkers {
		if strings.Contains(raw, marker) {
			return "", false
		}
	}

	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}

	if prefix, _, found := strings.Cut(raw, "._"); found {
		return prefix + largeImageSuffix, true
	}
	return raw, true
}

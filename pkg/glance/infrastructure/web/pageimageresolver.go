package web

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"kgeyst.com/glance/pkg/common"
)

const maxPageSize = 2 * 1024 * 1024

// PageImageResolver finds the preview image of a web page, so that links to image hosting pages work just like
// direct image links.
type PageImageResolver struct{}

func NewPageImageResolver() *PageImageResolver {
	return &PageImageResolver{}
}

// ResolveImageURL returns the absolute URL of the page's preview image (og:image, twitter:image or
// <link rel="image_src">), or an empty string if the page has none.
func (p *PageImageResolver) ResolveImageURL(ctx context.Context, pageURL string) (string, error) {
	page, err := common.ReadAllFromURL(ctx, pageURL, maxPageSize)
	if err != nil {
		return "", err
	}
	document, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", err
	}
	imageURL := findPreviewImage(document)
	if imageURL == "" {
		return "", nil
	}
	return absoluteURL(pageURL, imageURL), nil
}

func findPreviewImage(document *goquery.Document) string {
	selectors := []struct {
		selector  string
		attribute string
	}{
		{`meta[property="og:image"]`, "content"},
		{`meta[property="og:image:url"]`, "content"},
		{`meta[name="twitter:image"]`, "content"},
		{`link[rel="image_src"]`, "href"},
	}
	for _, s := range selectors {
		value, ok := document.Find(s.selector).First().Attr(s.attribute)
		value = strings.TrimSpace(value)
		if ok && value != "" {
			return value
		}
	}
	return ""
}

func absoluteURL(pageURL, imageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return imageURL
	}
	ref, err := url.Parse(imageURL)
	if err != nil {
		return imageURL
	}
	return base.ResolveReference(ref).String()
}

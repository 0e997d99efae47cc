package web

import (
	"strings"

	"github.com/mvdan/xurls"
)

type URLFinder struct{}

func NewURLFinder() *URLFinder {
	return &URLFinder{}
}

// FindURLs returns web URLs in the order they appear in the text. Bare domains ("example.com") are skipped: there's
// nothing to download from them.
func (u *URLFinder) FindURLs(str string) []string {
	var result []string
	for _, url := range xurls.Strict.FindAllString(str, -1) {
		lowerURL := strings.ToLower(url)
		if strings.HasPrefix(lowerURL, "http://") || strings.HasPrefix(lowerURL, "https://") {
			result = append(result, url)
		}
	}
	return result
}

package common

import (
	"net/url"
	"path"
	"strings"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

// IsImageFormat checks by the file extension if the URL points to an image. Query strings and fragments are ignored,
// because chat services like to append signatures to attachment URLs.
func IsImageFormat(rawURL string) bool {
	p := rawURL
	parsedURL, err := url.Parse(rawURL)
	if err == nil && parsedURL.Path != "" {
		p = parsedURL.Path
	}
	ext := strings.ToLower(path.Ext(p))
	for _, imageExt := range imageExtensions {
		if ext == imageExt {
			return true
		}
	}
	return false
}

// SplitLines splits multi-line text for transports which only support single-line messages. Empty lines are dropped.
func SplitLines(text string) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

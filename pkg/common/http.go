package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrResponseTooLarge = errors.New("response is too large")
)

// ReadAllFromURL reads all content from the URL, at most `maxSize` bytes (no limit if `maxSize` <= 0).
func ReadAllFromURL(ctx context.Context, url string, maxSize int64) ([]byte, error) {
	body, err := get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = body.Close()
	}()
	content, err := io.ReadAll(limitReader(body, maxSize))
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && int64(len(content)) > maxSize {
		return nil, fmt.Errorf("%s: %w", url, ErrResponseTooLarge)
	}
	return content, nil
}

// DownloadFromURL saves the content of the URL to `filePath`, at most `maxSize` bytes (no limit if `maxSize` <= 0).
// A partially written file is removed on failure.
func DownloadFromURL(ctx context.Context, url, filePath string, maxSize int64) error {
	body, err := get(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = body.Close()
	}()
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	written, err := io.Copy(file, limitReader(body, maxSize))
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && maxSize > 0 && written > maxSize {
		err = fmt.Errorf("%s: %w", url, ErrResponseTooLarge)
	}
	if err != nil {
		_ = os.Remove(filePath)
		return err
	}
	return nil
}

func get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		_ = res.Body.Close()
		return nil, fmt.Errorf("%s: %w: %d", url, ErrUnexpectedStatus, res.StatusCode)
	}
	return res.Body, nil
}

// One extra byte lets the caller tell "exactly maxSize" from "more than maxSize".
func limitReader(r io.Reader, maxSize int64) io.Reader {
	if maxSize <= 0 {
		return r
	}
	return io.LimitReader(r, maxSize+1)
}

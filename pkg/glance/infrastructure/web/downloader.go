package web

import (
	"context"
	"time"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

// Downloader fetches attachments over HTTP with a timeout and a size cap.
type Downloader struct {
	timeout time.Duration
	maxSize int64
}

func NewDownloader(config *common.Config) *Downloader {
	return &Downloader{
		timeout: config.GetDurationOrDefault(domain.ConfigKeyDownloadTimeout, 30*time.Second),
		maxSize: int64(config.GetIntOrDefault(domain.ConfigKeyMaxDownloadSize, 20*1024*1024)),
	}
}

func (d *Downloader) Download(ctx context.Context, url, filePath string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return common.DownloadFromURL(ctx, url, filePath, d.maxSize)
}

package domain

import (
	"context"
	"fmt"
	"path/filepath"
)

// Ingestor makes an attachment available both locally (for rendering) and remotely (for the vision service).
type Ingestor struct {
	assetStore    AssetStore
	downloader    Downloader
	objectStorage ObjectStorage
	bucketPrefix  string
}

func NewIngestor(assetStore AssetStore, downloader Downloader, objectStorage ObjectStorage, bucketPrefix string) *Ingestor {
	return &Ingestor{
		assetStore:    assetStore,
		downloader:    downloader,
		objectStorage: objectStorage,
		bucketPrefix:  bucketPrefix,
	}
}

// Ingest downloads the attachment under a fresh identifier and uploads it under a key derived from that identifier.
// Errors are not retried.
func (i *Ingestor) Ingest(ctx context.Context, url string) (*IngestedImage, error) {
	asset, err := i.assetStore.NewAsset()
	if err != nil {
		return nil, fmt.Errorf("allocate asset: %w", err)
	}
	err = i.downloader.Download(ctx, url, asset.OriginalPath)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	uri, err := i.objectStorage.Upload(ctx, asset.OriginalPath, i.ObjectKey(asset))
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", asset.OriginalPath, err)
	}
	return &IngestedImage{
		Asset: asset,
		URI:   uri,
	}, nil
}

// ObjectKey is the bucket-relative key of the original image, e.g. "chatimages/<id>_original.jpg".
func (i *Ingestor) ObjectKey(asset *ImageAsset) string {
	name := filepath.Base(asset.OriginalPath)
	if i.bucketPrefix == "" {
		return name
	}
	return i.bucketPrefix + "/" + name
}

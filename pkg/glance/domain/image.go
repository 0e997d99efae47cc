package domain

import "context"

// ImageAsset is a local copy of an inbound attachment. The annotated variant shares the identifier.
type ImageAsset struct {
	ID           string
	OriginalPath string
}

// IngestedImage is an ImageAsset which was also uploaded to object storage.
type IngestedImage struct {
	Asset *ImageAsset
	URI   string // a reference the vision service can read, e.g. "gs://bucket/key"
}

// AssetStore manages the local working directory.
type AssetStore interface {
	// NewAsset allocates a fresh, collision-free identifier and the path for the original image.
	NewAsset() (*ImageAsset, error)
	// AnnotatedPath returns where the annotated variant with the given file extension (e.g. ".png") belongs.
	AnnotatedPath(asset *ImageAsset, ext string) string
	// Remove deletes all local files of the asset.
	Remove(asset *ImageAsset) error
}

type Downloader interface {
	Download(ctx context.Context, url, filePath string) error
}

type ObjectStorage interface {
	// Upload stores the local file under `key` and returns a URI the vision service can read.
	Upload(ctx context.Context, filePath, key string) (string, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, uri string) (*AnalysisResult, error)
}

// LabelDescriber provides a short human-readable description of a label, such as an encyclopedia summary.
type LabelDescriber interface {
	DescribeLabel(label string) (string, error)
}

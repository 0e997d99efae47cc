package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

const (
	originalSuffix  = "_original.jpg"
	annotatedSuffix = "_annotated"
)

// AssetStore keeps images in a flat working directory: "<id>_original.jpg" and "<id>_annotated.{jpg,png}".
// Identifiers are random UUIDs, so concurrent events never share files.
type AssetStore struct {
	directory string
}

func NewAssetStore(config *common.Config) *AssetStore {
	return &AssetStore{
		directory: config.GetStringOrDefault(domain.ConfigKeyImageDirectory, "images"),
	}
}

func (a *AssetStore) NewAsset() (*domain.ImageAsset, error) {
	err := os.MkdirAll(a.directory, 0755)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &domain.ImageAsset{
		ID:           id,
		OriginalPath: filepath.Join(a.directory, id+originalSuffix),
	}, nil
}

func (a *AssetStore) AnnotatedPath(asset *domain.ImageAsset, ext string) string {
	return filepath.Join(a.directory, asset.ID+annotatedSuffix+ext)
}

// Remove deletes the original and every annotated variant. Missing files are not an error.
func (a *AssetStore) Remove(asset *domain.ImageAsset) error {
	paths := []string{
		asset.OriginalPath,
		a.AnnotatedPath(asset, ".jpg"),
		a.AnnotatedPath(asset, ".png"),
	}
	var errs []error
	for _, path := range paths {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

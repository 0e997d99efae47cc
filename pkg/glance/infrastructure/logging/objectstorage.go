package logging

import (
	"context"
	"fmt"
	"time"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

type objectStorageDecorator struct {
	wrappedObjectStorage domain.ObjectStorage
	logger               common.Logger
}

func NewObjectStorageDecorator(wrappedObjectStorage domain.ObjectStorage, logger common.Logger) domain.ObjectStorage {
	return &objectStorageDecorator{
		wrappedObjectStorage: wrappedObjectStorage,
		logger:               logger,
	}
}

func (o *objectStorageDecorator) Upload(ctx context.Context, filePath, key string) (string, error) {
	t := time.Now()
	uri, err := o.wrappedObjectStorage.Upload(ctx, filePath, key)
	if err != nil {
		o.logger.Log(fmt.Sprintf("upload of %s as %s failed: %s", filePath, key, err))
		return "", err
	}
	o.logger.Log(fmt.Sprintf("uploaded %s as %s (took %d ms)", filePath, uri, time.Since(t).Milliseconds()))
	return uri, nil
}

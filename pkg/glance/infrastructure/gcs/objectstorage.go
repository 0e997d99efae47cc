package gcs

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

const (
	// ConfigKeyPublicBaseURL the base URL under which published objects are reachable by chat users
	ConfigKeyPublicBaseURL = "publicBaseURL"
	// ConfigKeyPublishACL the predefined ACL for published objects, e.g. "publicRead"; leave empty for buckets with
	// uniform bucket-level access
	ConfigKeyPublishACL = "publishACL"
)

// ObjectStorage uploads files to a Google Cloud Storage bucket.
type ObjectStorage struct {
	service       *storage.Service
	bucketName    string
	bucketPrefix  string
	publicBaseURL string
	publishACL    string
}

func NewObjectStorage(ctx context.Context, config *common.Config, options ...option.ClientOption) (*ObjectStorage, error) {
	options = append(clientOptions(config), options...)
	service, err := storage.NewService(ctx, options...)
	if err != nil {
		return nil, err
	}
	return &ObjectStorage{
		service:       service,
		bucketName:    config.GetStringOrDefault(domain.ConfigKeyBucketName, "image-bot-bucket"),
		bucketPrefix:  BucketPrefix(config),
		publicBaseURL: strings.TrimSuffix(config.GetStringOrDefault(ConfigKeyPublicBaseURL, "https://storage.googleapis.com"), "/"),
		publishACL:    config.GetString(ConfigKeyPublishACL),
	}, nil
}

// BucketPrefix is the "folder" for uploaded images (see domain.ConfigKeyBucketPrefix).
func BucketPrefix(config *common.Config) string {
	return strings.Trim(config.GetStringOrDefault(domain.ConfigKeyBucketPrefix, "chatimages"), "/")
}

func clientOptions(config *common.Config) []option.ClientOption {
	var options []option.ClientOption
	credentialsFile := config.GetString(domain.ConfigKeyGoogleCredentialsFile)
	if credentialsFile != "" {
		options = append(options, option.WithCredentialsFile(credentialsFile))
	}
	endpoint := config.GetString(domain.ConfigKeyStorageEndpoint)
	if endpoint != "" {
		options = append(options, option.WithEndpoint(endpoint))
	}
	return options
}

// Upload returns a "gs://" URI, which is what the vision service expects.
func (o *ObjectStorage) Upload(ctx context.Context, filePath, key string) (string, error) {
	object, err := o.insert(ctx, filePath, key, "")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("gs://%s/%s", object.Bucket, object.Name), nil
}

// Publish uploads an annotated image so that chat users can open it, and returns its public URL. Used by transports
// which can't attach files to messages.
func (o *ObjectStorage) Publish(ctx context.Context, filePath string) (string, error) {
	key := filepath.Base(filePath)
	if o.bucketPrefix != "" {
		key = o.bucketPrefix + "/" + key
	}
	object, err := o.insert(ctx, filePath, key, o.publishACL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", o.publicBaseURL, object.Bucket, object.Name), nil
}

func (o *ObjectStorage) insert(ctx context.Context, filePath, key, predefinedACL string) (*storage.Object, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	call := o.service.Objects.Insert(o.bucketName, &storage.Object{
		Name:        key,
		ContentType: contentType,
	}).Media(file, googleapi.ContentType(contentType))
	if predefinedACL != "" {
		call = call.PredefinedAcl(predefinedACL)
	}
	object, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gcs: insert %s/%s: %w", o.bucketName, key, err)
	}
	if object.Bucket == "" {
		object.Bucket = o.bucketName
	}
	if object.Name == "" {
		object.Name = key
	}
	return object, nil
}

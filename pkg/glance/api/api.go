package api

import (
	"context"

	"google.golang.org/api/option"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/annotation"
	"kgeyst.com/glance/pkg/glance/domain"
	"kgeyst.com/glance/pkg/glance/infrastructure/filesystem"
	"kgeyst.com/glance/pkg/glance/infrastructure/gcs"
	"kgeyst.com/glance/pkg/glance/infrastructure/gvision"
	"kgeyst.com/glance/pkg/glance/infrastructure/logging"
	"kgeyst.com/glance/pkg/glance/infrastructure/web"
	"kgeyst.com/glance/pkg/glance/infrastructure/wiki"
)

type api struct {
	imageService  *domain.ImageService
	objectStorage *gcs.ObjectStorage
}

// See domain/config.go
const (
	ConfigKeyBotName = domain.ConfigKeyBotName
	ConfigKeyLogPath = domain.ConfigKeyLogPath
)

// API is the entrypoint to Glance. It shouldn't contain any logic of its own; it glues all the components together
// and provides a public interface for domain.ImageService.
// This API can be used with various transports: IRC, feeds, console input/output etc.
type API interface {
	// HandleEvent analyzes the first image attached to the event and replies with a description and an annotated
	// copy of the image. Has the signature of domain.EventHandler, so it can be passed to any transport as is.
	HandleEvent(ctx context.Context, event *domain.Event, replier domain.Replier) error
	// Publish uploads a local image to the bucket and returns a URL chat users can open. Transports which can't
	// attach files use it to share annotated images.
	Publish(ctx context.Context, filePath string) (string, error)
}

func NewLogger(config *common.Config) common.Logger {
	return common.NewFileLogger(config.GetStringOrDefault(ConfigKeyLogPath, "log.txt"))
}

// NewAPI creates the Google clients once for the whole process. Credentials come from the environment unless
// `googleCredentialsFile` is set; `options` are passed to both clients.
func NewAPI(ctx context.Context, config *common.Config, logger common.Logger, options ...option.ClientOption) (API, error) {
	objectStorage, err := gcs.NewObjectStorage(ctx, config, options...)
	if err != nil {
		return nil, err
	}
	visionAnalyzer, err := gvision.NewAnalyzer(ctx, config, options...)
	if err != nil {
		return nil, err
	}
	style, err := annotation.StyleFromConfig(config)
	if err != nil {
		return nil, err
	}
	assetStore := filesystem.NewAssetStore(config)
	ingestor := domain.NewIngestor(
		assetStore,
		web.NewDownloader(config),
		logging.NewObjectStorageDecorator(objectStorage, logger),
		gcs.BucketPrefix(config),
	)
	var labelDescriber domain.LabelDescriber
	if config.GetBoolOrDefault(domain.ConfigKeyDescribeTopLabel, false) {
		labelDescriber = wiki.NewLabelDescriber(1)
	}
	return &api{
		imageService: domain.NewImageService(
			ingestor,
			logging.NewAnalyzerDecorator(visionAnalyzer, logger),
			annotation.NewRenderer(assetStore, style, logger),
			assetStore,
			labelDescriber,
			config,
			logger,
		),
		objectStorage: objectStorage,
	}, nil
}

func (a *api) HandleEvent(ctx context.Context, event *domain.Event, replier domain.Replier) error {
	return a.imageService.HandleEvent(ctx, event, replier)
}

func (a *api) Publish(ctx context.Context, filePath string) (string, error) {
	return a.objectStorage.Publish(ctx, filePath)
}

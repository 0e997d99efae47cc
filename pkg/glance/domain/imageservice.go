package domain

import (
	"context"
	"fmt"

	"kgeyst.com/glance/pkg/common"
)

// ImageService is the main orchestrator: for every inbound image it runs ingestion, analysis and response synthesis,
// one after another. It holds no per-event state, so a transport may call HandleEvent concurrently.
type ImageService struct {
	ingestor       *Ingestor
	analyzer       Analyzer
	annotator      Annotator
	assetStore     AssetStore
	labelDescriber LabelDescriber // optional
	keepImages     bool
	logger         common.Logger
}

func NewImageService(
	ingestor *Ingestor,
	analyzer Analyzer,
	annotator Annotator,
	assetStore AssetStore,
	labelDescriber LabelDescriber,
	config *common.Config,
	logger common.Logger,
) *ImageService {
	return &ImageService{
		ingestor:       ingestor,
		analyzer:       analyzer,
		annotator:      annotator,
		assetStore:     assetStore,
		labelDescriber: labelDescriber,
		keepImages:     config.GetBoolOrDefault(ConfigKeyKeepImages, true),
		logger:         logger,
	}
}

// HandleEvent processes the first attachment of the event (others are ignored) and replies. Ingestion and analysis
// errors are returned as is: nothing is replied in that case.
func (s *ImageService) HandleEvent(ctx context.Context, event *Event, replier Replier) error {
	if event.SelfAuthored || len(event.Attachments) == 0 {
		return nil
	}
	ingestedImage, err := s.ingestor.Ingest(ctx, event.Attachments[0].URL)
	if err != nil {
		return err
	}
	s.logger.Log(fmt.Sprintf("ingested %s from %s as %s", event.Attachments[0].URL, event.Author, ingestedImage.URI))
	if !s.keepImages {
		defer s.removeAsset(ingestedImage.Asset)
	}
	result, err := s.analyzer.Analyze(ctx, ingestedImage.URI)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", ingestedImage.URI, err)
	}
	response, ok := FormatResponse(result)
	if !ok {
		return replier.Reply(ctx, NothingRecognizedMessage)
	}
	response = s.appendLabelDescription(response, result)
	outcome := s.annotator.Annotate(result, ingestedImage.Asset)
	if !outcome.OK() {
		err = replier.Reply(ctx, CouldntProcessMessage)
		if err != nil {
			return err
		}
		return replier.Reply(ctx, response)
	}
	return replier.ReplyWithImage(ctx, response, outcome.Path)
}

func (s *ImageService) appendLabelDescription(response string, result *AnalysisResult) string {
	if s.labelDescriber == nil {
		return response
	}
	label := result.Detections[0].Label
	description, err := s.labelDescriber.DescribeLabel(label)
	if err != nil {
		s.logger.Log(fmt.Sprintf("failed to describe label '%s': %s", label, err))
		return response
	}
	if description == "" {
		return response
	}
	return fmt.Sprintf("%s\nAbout '%s': %s", response, label, description)
}

func (s *ImageService) removeAsset(asset *ImageAsset) {
	err := s.assetStore.Remove(asset)
	if err != nil {
		s.logger.Log(fmt.Sprintf("failed to remove asset %s: %s", asset.ID, err))
	}
}

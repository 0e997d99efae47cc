package gvision

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/vision/v1"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

const objectLocalizationFeature = "OBJECT_LOCALIZATION"

// Analyzer asks Google Cloud Vision to localize objects in an image which is already in Cloud Storage
// (or anywhere else the service can read, such as a public URL).
type Analyzer struct {
	service       *vision.Service
	maxDetections int64
}

func NewAnalyzer(ctx context.Context, config *common.Config, options ...option.ClientOption) (*Analyzer, error) {
	options = append(clientOptions(config), options...)
	service, err := vision.NewService(ctx, options...)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		service:       service,
		maxDetections: int64(config.GetIntOrDefault(domain.ConfigKeyMaxDetections, 10)),
	}, nil
}

func clientOptions(config *common.Config) []option.ClientOption {
	var options []option.ClientOption
	credentialsFile := config.GetString(domain.ConfigKeyGoogleCredentialsFile)
	if credentialsFile != "" {
		options = append(options, option.WithCredentialsFile(credentialsFile))
	}
	endpoint := config.GetString(domain.ConfigKeyVisionEndpoint)
	if endpoint != "" {
		options = append(options, option.WithEndpoint(endpoint))
	}
	return options
}

func (a *Analyzer) Analyze(ctx context.Context, uri string) (*domain.AnalysisResult, error) {
	request := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image: &vision.Image{
					Source: &vision.ImageSource{ImageUri: uri},
				},
				Features: []*vision.Feature{
					{Type: objectLocalizationFeature, MaxResults: a.maxDetections},
				},
			},
		},
	}
	response, err := a.service.Images.Annotate(request).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(response.Responses) == 0 {
		return nil, errors.New("vision: empty response")
	}
	imageResponse := response.Responses[0]
	if imageResponse.Error != nil && imageResponse.Error.Code != 0 {
		return nil, fmt.Errorf("vision: %s (code %d)", imageResponse.Error.Message, imageResponse.Error.Code)
	}
	return toAnalysisResult(imageResponse.LocalizedObjectAnnotations), nil
}

func toAnalysisResult(annotations []*vision.LocalizedObjectAnnotation) *domain.AnalysisResult {
	result := &domain.AnalysisResult{
		Detections: make([]domain.Detection, 0, len(annotations)),
	}
	for _, annotation := range annotations {
		if annotation == nil {
			continue
		}
		result.Detections = append(result.Detections, domain.Detection{
			Label:      annotation.Name,
			Confidence: annotation.Score,
			Box:        toBoundingBox(annotation.BoundingPoly),
		})
	}
	return result
}

// The service returns four vertices clockwise from the top-left; the first and the third are the corners we need.
func toBoundingBox(poly *vision.BoundingPoly) domain.BoundingBox {
	if poly == nil || len(poly.NormalizedVertices) < 3 {
		return domain.BoundingBox{}
	}
	topLeft, bottomRight := poly.NormalizedVertices[0], poly.NormalizedVertices[2]
	if topLeft == nil || bottomRight == nil {
		return domain.BoundingBox{}
	}
	return domain.BoundingBox{
		Left:   topLeft.X,
		Top:    topLeft.Y,
		Right:  bottomRight.X,
		Bottom: bottomRight.Y,
	}
}

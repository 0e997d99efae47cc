package logging

import (
	"context"
	"fmt"
	"time"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

type analyzerDecorator struct {
	wrappedAnalyzer domain.Analyzer
	logger          common.Logger
}

func NewAnalyzerDecorator(wrappedAnalyzer domain.Analyzer, logger common.Logger) domain.Analyzer {
	return &analyzerDecorator{
		wrappedAnalyzer: wrappedAnalyzer,
		logger:          logger,
	}
}

func (a *analyzerDecorator) Analyze(ctx context.Context, uri string) (*domain.AnalysisResult, error) {
	t := time.Now()
	result, err := a.wrappedAnalyzer.Analyze(ctx, uri)
	if err != nil {
		a.logger.Log(fmt.Sprintf("analysis of %s failed (took %d ms): %s", uri, time.Since(t).Milliseconds(), err))
		return nil, err
	}
	message := fmt.Sprintf("analysis of %s: %d detection(s) (took %d ms)", uri, len(result.Detections), time.Since(t).Milliseconds())
	for _, detection := range result.Detections {
		message += fmt.Sprintf("\n  %s %+v", domain.FormatLabel(detection), detection.Box)
	}
	a.logger.Log(message)
	return result, nil
}

package domain

type RenderOutcomeKind int

const (
	// RenderFailed the annotated image is unavailable; the text response can still be sent
	RenderFailed RenderOutcomeKind = iota
	// RenderSaved the annotated image was saved in the primary format
	RenderSaved
	// RenderFallbackSaved the primary format couldn't represent the image, so an alternate lossless format was used
	RenderFallbackSaved
)

type RenderOutcome struct {
	Kind RenderOutcomeKind
	Path string // empty if Kind is RenderFailed
}

func (r RenderOutcome) OK() bool {
	return r.Kind != RenderFailed && r.Path != ""
}

// Annotator draws detections on top of the original image and saves the result next to it.
type Annotator interface {
	Annotate(result *AnalysisResult, asset *ImageAsset) RenderOutcome
}

package domain

// BoundingBox is an axis-aligned rectangle in normalized [0,1] coordinates relative to the image size.
type BoundingBox struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Detection is one object recognized by the vision service.
type Detection struct {
	Label      string
	Confidence float64 // [0,1]
	Box        BoundingBox
}

// AnalysisResult is the full set of detections for one image, in the order the vision service returned them
// (the service ranks them by confidence, we never re-sort).
type AnalysisResult struct {
	Detections []Detection
}

func (a *AnalysisResult) IsEmpty() bool {
	return a == nil || len(a.Detections) == 0
}

// ConfidencePercent converts a [0,1] confidence to a percentage. The value is truncated, not rounded: 0.879 is 87%.
func ConfidencePercent(confidence float64) int {
	percent := int(confidence * 100)
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

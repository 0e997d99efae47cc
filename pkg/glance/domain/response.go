package domain

import (
	"fmt"
	"strings"
)

const (
	NothingRecognizedMessage = "Sorry, doesn't look like anything to me :/"
	CouldntProcessMessage    = "Sorry, couldn't process that image :/"
)

// FormatResponse explains the analysis in a human-friendly way: the top guess first, then the other guesses.
// Returns false if nothing was recognized (the caller should reply with NothingRecognizedMessage).
func FormatResponse(result *AnalysisResult) (string, bool) {
	if result.IsEmpty() {
		return "", false
	}
	top := result.Detections[0]
	response := fmt.Sprintf("Looks like: '%s' (Probability: %d%%)", top.Label, ConfidencePercent(top.Confidence))
	if len(result.Detections) == 1 {
		return response, true
	}
	otherGuesses := make([]string, 0, len(result.Detections)-1)
	for _, detection := range result.Detections[1:] {
		otherGuesses = append(otherGuesses, FormatLabel(detection))
	}
	return response + "\nOther guesses: " + strings.Join(otherGuesses, ", "), true
}

// FormatLabel formats a detection as "Label (NN%)". The same text is drawn next to bounding boxes.
func FormatLabel(detection Detection) string {
	return fmt.Sprintf("%s (%d%%)", detection.Label, ConfidencePercent(detection.Confidence))
}

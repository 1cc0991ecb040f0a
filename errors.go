package mecab

import "fmt"

// AnalysisError is returned when the engine reports failure for a sentence.
// Message is the engine's own diagnostic.
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string {
	return "mecab: analysis failed: " + e.Message
}

// MalformedFeatureError is returned when a node's feature string does not
// split into exactly eight comma-separated fields. It means the engine or
// its dictionary broke the feature contract.
type MalformedFeatureError struct {
	// Raw is the feature string as the engine produced it.
	Raw string
	// Fields is the number of fields Raw split into.
	Fields int
}

func (e *MalformedFeatureError) Error() string {
	return fmt.Sprintf("mecab: malformed feature %q: got %d fields, want %d", e.Raw, e.Fields, featureFields)
}

// AlignmentError is returned by ReinsertSpaces when the tokens do not
// reconstruct the original text with whitespace removed.
type AlignmentError struct {
	// Offset is the byte offset into the original text where alignment failed.
	Offset int
	// Surface is the token surface being placed, empty if tokens ran out.
	Surface string
	Reason  string
}

func (e *AlignmentError) Error() string {
	if e.Surface == "" {
		return fmt.Sprintf("mecab: alignment failed at byte %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("mecab: alignment failed at byte %d (token %q): %s", e.Offset, e.Surface, e.Reason)
}

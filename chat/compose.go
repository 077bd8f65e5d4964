package chat

import (
	"strings"

	"github.com/jrsteele09/go-care-console/gateway"
)

// ContextKind classifies what the service extracted from one attachment.
type ContextKind string

const (
	ContextAnalysis   ContextKind = "analysis"
	ContextTranscript ContextKind = "transcript"
	ContextNone       ContextKind = "none"
)

// ExtractedContext is one attachment's contribution to the composite
// message body.
type ExtractedContext struct {
	Kind        ContextKind
	Text        string
	DisplayName string
}

// Segment renders this context as one line block of the composite body.
// When nothing was extracted, a minimal marker records that a file was
// attached at all.
func (e ExtractedContext) Segment() string {
	switch e.Kind {
	case ContextAnalysis, ContextTranscript:
		return e.Text
	default:
		return "[Attached file: " + e.DisplayName + "]"
	}
}

// extractContext maps an upload result onto the typed variant. Recordings
// prefer their transcript; documents their analysis.
func extractContext(att Attachment, result *gateway.UploadResult) ExtractedContext {
	if att.Kind == AttachmentRecording && result.Transcript != "" {
		return ExtractedContext{Kind: ContextTranscript, Text: result.Transcript, DisplayName: att.DisplayName}
	}
	if result.Analysis != "" {
		return ExtractedContext{Kind: ContextAnalysis, Text: result.Analysis, DisplayName: att.DisplayName}
	}
	return ExtractedContext{Kind: ContextNone, DisplayName: att.DisplayName}
}

// Compose builds the composite message body: the per-attachment segments in
// attachment submission order, one per line, a blank line, then the user's
// free text. With no attachments the body is exactly the user text, with no
// separator artifacts.
func Compose(contexts []ExtractedContext, userText string) string {
	if len(contexts) == 0 {
		return userText
	}

	segments := make([]string, 0, len(contexts))
	for _, c := range contexts {
		segments = append(segments, c.Segment())
	}
	return strings.Join(segments, "\n") + "\n\n" + userText
}

package chat

// AttachmentKind distinguishes picked files from audio recorded in the
// console; recordings are transcribed server-side instead of analyzed.
type AttachmentKind string

const (
	AttachmentFile      AttachmentKind = "file"
	AttachmentRecording AttachmentKind = "audio_recording"
)

// Playback is a live audio playback handle. Recordings queued for a turn can
// be replayed before sending; removal must stop playback first so no handle
// outlives its media.
type Playback interface {
	Stop()
}

// Attachment is one queued item for the next turn. ID is assigned by the
// orchestrator on add; callers leave it empty.
type Attachment struct {
	ID          string
	Kind        AttachmentKind
	DisplayName string
	ContentType string
	Data        []byte
	Playback    Playback
}

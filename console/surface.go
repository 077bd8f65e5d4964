// Package console defines the narrow boundary the controllers render
// through. Implementations own presentation only; no business logic ever
// lives behind this interface.
package console

// EchoTurn is the optimistic rendering of an outbound turn: the raw text and
// the display names of its attachments, shown before the backend confirms.
type EchoTurn struct {
	Text            string
	AttachmentNames []string
}

// Surface receives state changes from the auth controller and the turn
// orchestrator. Calls arrive from at most one flow at a time plus the
// detached title task; implementations must tolerate that interleaving.
type Surface interface {
	RenderEcho(turn EchoTurn)
	RenderReply(text string)
	RenderError(message string)
	Navigate(target string)
}

package chat

import (
	"context"

	"github.com/jrsteele09/go-care-console/gateway"
)

// Gateway is the slice of the remote service the orchestrator consumes.
// *gateway.Client satisfies it.
type Gateway interface {
	Upload(ctx context.Context, req gateway.UploadRequest) (*gateway.UploadResult, error)
	SendMessage(ctx context.Context, userID, sessionID, message string) (*gateway.ChatRecord, error)
	GenerateTitle(ctx context.Context, message string) (string, error)
	Autocomplete(ctx context.Context, text string) ([]string, error)
}

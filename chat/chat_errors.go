package chat

import "errors"

var (
	EmptyTurnErr    = errors.New("turn has no text and no attachments")
	UploadFailedErr = errors.New("attachment upload failed")
)

package config

import "time"

type ClientConfig interface {
	GetRequestTimeout() time.Duration
	GetUploadTimeout() time.Duration
}

type Client struct{}

var _ ClientConfig = Client{}

func (Client) GetRequestTimeout() time.Duration {
	return 60 * time.Second
}

// GetUploadTimeout bounds a single attachment upload; document analysis and
// transcription happen inline on the service, so this is generous.
func (Client) GetUploadTimeout() time.Duration {
	return 5 * time.Minute
}

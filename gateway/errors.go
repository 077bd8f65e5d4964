package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// NetworkErr marks connectivity and timeout failures. These are retryable by
// user action; nothing in the client retries automatically.
var NetworkErr = errors.New("network error")

// ServiceError is a non-2xx response from the backend with whatever detail
// the service supplied. The detail is surfaced to the user verbatim.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	return e.Detail
}

// serviceErrorFrom extracts a human-readable message from an error payload.
// The backend reports failures as {"detail": ...} and federated endpoints as
// {"message": ...}; anything else falls back to a generic message.
func serviceErrorFrom(status int, raw []byte) *ServiceError {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}

	detail := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Detail != "" {
			detail = payload.Detail
		} else if payload.Message != "" {
			detail = payload.Message
		}
	}
	if strings.TrimSpace(detail) == "" {
		detail = fmt.Sprintf("the service returned an unexpected error (status %d)", status)
	}

	return &ServiceError{StatusCode: status, Detail: detail}
}

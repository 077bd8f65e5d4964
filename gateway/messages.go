package gateway

import "github.com/pkg/errors"

const (
	networkMessage = "Unable to reach the service. Check your connection and try again."
	genericMessage = "Something went wrong. Please try again."
)

// UserMessage converts any error from the gateway into the single message
// shown to the user. Service detail is surfaced verbatim; transport failures
// get a fixed connectivity message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Detail
	}
	if errors.Is(err, NetworkErr) {
		return networkMessage
	}
	return genericMessage
}

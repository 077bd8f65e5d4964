package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-care-console/gateway"
)

// RequestPasswordReset asks the service to email a reset link. It sits
// outside the handshake state machine and always reports the same message on
// success, whether or not the email maps to an account.
func (c *Controller) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		c.surface.RenderError("Enter the email address for your account.")
		return "", errors.Wrap(ValidationErr, "valid email is required")
	}

	if _, err := c.gw.ForgotPassword(ctx, email); err != nil {
		c.surface.RenderError(gateway.UserMessage(err))
		return "", errors.Wrap(err, "[Controller.RequestPasswordReset] forgot password")
	}

	return resetRequestedMessage, nil
}

// ApplyPasswordReset completes a reset with the emailed token. Secrets below
// the minimum length fail locally with WeakSecretErr; a rejected token is
// reported as InvalidTokenErr with the service's own wording.
func (c *Controller) ApplyPasswordReset(ctx context.Context, token, newPassword string) (string, error) {
	if strings.TrimSpace(token) == "" {
		c.surface.RenderError("The reset link is missing its token.")
		return "", errors.Wrap(ValidationErr, "reset token is required")
	}
	if err := ValidateNewPassword(newPassword); err != nil {
		c.surface.RenderError(gatewayMessageOr(err, "Choose a longer password."))
		return "", err
	}

	result, err := c.gw.ResetPassword(ctx, token, newPassword)
	if err != nil {
		c.surface.RenderError(gateway.UserMessage(err))
		var serviceErr *gateway.ServiceError
		if errors.As(err, &serviceErr) && serviceErr.StatusCode == http.StatusBadRequest {
			return "", errors.Wrap(InvalidTokenErr, serviceErr.Detail)
		}
		return "", errors.Wrap(err, "[Controller.ApplyPasswordReset] reset password")
	}

	message := result.Message
	if message == "" {
		message = "Password updated successfully."
	}
	return message, nil
}

func gatewayMessageOr(err error, fallback string) string {
	if errors.Is(err, WeakSecretErr) {
		return "Password must be at least 8 characters."
	}
	if msg := gateway.UserMessage(err); msg != "" {
		return msg
	}
	return fallback
}

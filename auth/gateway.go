package auth

import (
	"context"

	"github.com/jrsteele09/go-care-console/gateway"
)

// Gateway is the slice of the remote service the handshake controller
// consumes. *gateway.Client satisfies it.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*gateway.LoginResult, error)
	VerifyTwoFactor(ctx context.Context, userID, otpCode string) (*gateway.LoginResult, error)
	GoogleOneTap(ctx context.Context, credential string) (*gateway.FederatedResult, error)
	ForgotPassword(ctx context.Context, email string) (*gateway.StatusResult, error)
	ResetPassword(ctx context.Context, token, password string) (*gateway.StatusResult, error)
	CreateUser(ctx context.Context, req gateway.SignupRequest) (*gateway.CreatedUser, error)
}

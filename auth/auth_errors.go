package auth

import "errors"

var (
	ValidationErr     = errors.New("invalid input")
	SessionExpiredErr = errors.New("sign-in session expired")
	RoleMismatchErr   = errors.New("account role does not match the selected surface")
	WeakSecretErr     = errors.New("password does not meet the minimum length")
	InvalidTokenErr   = errors.New("invalid or expired reset token")
	FederatedAuthErr  = errors.New("federated sign-in rejected")
)

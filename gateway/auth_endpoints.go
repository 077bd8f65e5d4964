package gateway

import (
	"context"
	"encoding/json"
)

// statusTwoFactorRequired is how /login signals that the password checked out
// but a one-time code must be verified before a session is granted.
const statusTwoFactorRequired = "2fa_required"

// LoginResult is the /login and /auth/verify-2fa success payload. The two
// shapes share a body: either Status is "2fa_required" and only UserID and
// Message are meaningful, or the identity fields are populated.
type LoginResult struct {
	Status      string          `json:"status"`
	UserID      json.Number     `json:"user_id"`
	Message     string          `json:"message"`
	ID          json.Number     `json:"id"`
	Role        string          `json:"role"`
	Email       string          `json:"email"`
	Hash        string          `json:"hash"`
	RedirectURL string          `json:"redirect_url"`
	Raw         json.RawMessage `json:"-"`
}

// TwoFactorRequired reports whether the service is withholding the session
// until a second factor is verified.
func (r *LoginResult) TwoFactorRequired() bool {
	return r.Status == statusTwoFactorRequired
}

// Login submits first-factor credentials.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	return c.loginShaped(ctx, "/login", body)
}

// VerifyTwoFactor submits the one-time code for the pending user.
func (c *Client) VerifyTwoFactor(ctx context.Context, userID, otpCode string) (*LoginResult, error) {
	body := map[string]string{"user_id": userID, "otp_code": otpCode}
	return c.loginShaped(ctx, "/auth/verify-2fa", body)
}

func (c *Client) loginShaped(ctx context.Context, path string, body any) (*LoginResult, error) {
	var raw json.RawMessage
	if err := c.postJSON(ctx, path, body, &raw); err != nil {
		return nil, err
	}
	var result LoginResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	result.Raw = raw
	return &result, nil
}

// FederatedResult is the /auth/google-one-tap payload. Unlike /login, this
// endpoint reports failure in-band with Success=false and a message.
type FederatedResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Token       string          `json:"token"`
		Hash        string          `json:"hash"`
		RedirectURL string          `json:"redirect_url"`
		User        json.RawMessage `json:"user"`
	} `json:"data"`
}

// FederatedUser is the identity block inside a FederatedResult.
type FederatedUser struct {
	ID    json.Number `json:"id"`
	Email string      `json:"email"`
	Role  string      `json:"role"`
	Hash  string      `json:"hash"`
}

// GoogleOneTap exchanges a Google ID token credential for a session.
func (c *Client) GoogleOneTap(ctx context.Context, credential string) (*FederatedResult, error) {
	body := map[string]string{"credential": credential}
	var result FederatedResult
	if err := c.postJSON(ctx, "/auth/google-one-tap", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StatusResult is the generic {status, message} acknowledgement shape.
type StatusResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ForgotPassword requests a reset link. The service acknowledges identically
// whether or not the email corresponds to an account.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*StatusResult, error) {
	var result StatusResult
	if err := c.postJSON(ctx, "/auth/forgot-password", map[string]string{"email": email}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResetPassword completes a reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*StatusResult, error) {
	body := map[string]string{"token": token, "password": password}
	var result StatusResult
	if err := c.postJSON(ctx, "/auth/reset-password", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SignupRequest is the /users/ creation payload.
type SignupRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	ProviderID       string `json:"provider_id,omitempty"`
	HasSignedBAA     bool   `json:"has_signed_baa"`
	TwoFactorEnabled bool   `json:"is_2fa_enabled"`
}

// CreatedUser is the subset of the /users/ response the client consumes.
type CreatedUser struct {
	ID    json.Number `json:"id"`
	Email string      `json:"email"`
	Role  string      `json:"role"`
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, req SignupRequest) (*CreatedUser, error) {
	var created CreatedUser
	if err := c.postJSON(ctx, "/users/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

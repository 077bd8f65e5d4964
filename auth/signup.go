package auth

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-care-console/gateway"
	"github.com/jrsteele09/go-care-console/session"
)

// Provider IDs encode the account class: "88..." registers a doctor,
// "00..." an admin. The service applies the same rule; checking here saves a
// round trip for an ID that can never be accepted.
const (
	doctorIDPrefix = "88"
	adminIDPrefix  = "00"
)

// SignupParams is the input for account creation.
type SignupParams struct {
	Email            string
	Password         string
	Audience         session.Audience
	ProviderID       string
	HasSignedBAA     bool
	TwoFactorEnabled bool
}

// Signup registers a new account. Provider signups require a valid provider
// ID; the service decides between doctor and admin from its prefix.
func (c *Controller) Signup(ctx context.Context, params SignupParams) (*gateway.CreatedUser, error) {
	if err := ValidateCredentials(params.Email, params.Password); err != nil {
		c.surface.RenderError(credentialsRequiredMessage)
		return nil, err
	}
	if err := ValidateNewPassword(params.Password); err != nil {
		c.surface.RenderError("Password must be at least 8 characters.")
		return nil, err
	}

	role := string(session.RolePatient)
	providerID := ""
	if params.Audience == session.AudienceProvider {
		providerID = strings.TrimSpace(params.ProviderID)
		if providerID == "" {
			c.surface.RenderError("Provider ID is required.")
			return nil, errors.Wrap(ValidationErr, "provider ID is required")
		}
		if !strings.HasPrefix(providerID, doctorIDPrefix) && !strings.HasPrefix(providerID, adminIDPrefix) {
			c.surface.RenderError("Invalid Provider ID.")
			return nil, errors.Wrap(ValidationErr, "invalid provider ID")
		}
		role = string(session.RoleDoctor)
	}

	created, err := c.gw.CreateUser(ctx, gateway.SignupRequest{
		Email:            strings.TrimSpace(params.Email),
		Password:         params.Password,
		Role:             role,
		ProviderID:       providerID,
		HasSignedBAA:     params.HasSignedBAA,
		TwoFactorEnabled: params.TwoFactorEnabled,
	})
	if err != nil {
		c.surface.RenderError(gateway.UserMessage(err))
		return nil, errors.Wrap(err, "[Controller.Signup] create user")
	}

	return created, nil
}

package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleSignIn obtains the ID token credential that
// CompleteWithFederatedToken consumes. The console has no browser of its
// own, so it prints the authorization URL, the user signs in with Google and
// pastes the code back, and Exchange trades it for the credential. The
// credential is never verified here; the backend is the verifier.
type GoogleSignIn struct {
	config oauth2.Config
}

// NewGoogleSignIn builds the helper for the given OAuth client. redirectURL
// is typically the out-of-band value so Google displays the code for
// copy-paste.
func NewGoogleSignIn(clientID, clientSecret, redirectURL string) *GoogleSignIn {
	return &GoogleSignIn{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL returns the URL the user visits to authorize.
func (g *GoogleSignIn) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the pasted authorization code for the ID token credential.
func (g *GoogleSignIn) Exchange(ctx context.Context, code string) (string, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return "", errors.Wrap(err, "[GoogleSignIn.Exchange] code exchange")
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", errors.New("[GoogleSignIn.Exchange] response carried no id_token")
	}
	return idToken, nil
}

// FederatedClaims is the display-only subset of an ID token's claims.
type FederatedClaims struct {
	Email string
	Name  string
}

// PeekFederatedClaims decodes the credential without verifying its
// signature, purely so the console can show "signing in as ..." before the
// backend accepts or rejects it.
func PeekFederatedClaims(credential string) (*FederatedClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return nil, errors.Wrap(err, "[PeekFederatedClaims] parse credential")
	}

	peeked := &FederatedClaims{}
	if email, ok := claims["email"].(string); ok {
		peeked.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		peeked.Name = name
	}
	return peeked, nil
}

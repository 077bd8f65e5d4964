// Package session holds the authenticated identity for the lifetime of a
// console session and its persistence behind the Store interface.
package session

import "encoding/json"

// RoleType is the server-reported account class.
type RoleType string

const (
	RolePatient RoleType = "patient"
	RoleDoctor  RoleType = "doctor"
	RoleAdmin   RoleType = "admin"
)

// Audience is the console surface the user signed in through. The doctor and
// admin roles both belong to the provider surface.
type Audience string

const (
	AudiencePatient  Audience = "patient"
	AudienceProvider Audience = "provider"
)

// Allows reports whether an account of the given role may use this surface.
// This is a UX gate only; the server remains the authority on access.
func (a Audience) Allows(role RoleType) bool {
	switch a {
	case AudienceProvider:
		return role == RoleDoctor || role == RoleAdmin
	case AudiencePatient:
		return role == RolePatient
	}
	return false
}

// AudienceFor maps a role onto the surface it belongs to.
func AudienceFor(role RoleType) Audience {
	if role == RolePatient {
		return AudiencePatient
	}
	return AudienceProvider
}

// Identity is the persisted session state, created on successful
// authentication and destroyed on logout. RawProfile keeps the full service
// payload for surfaces that need fields the client does not model.
type Identity struct {
	UserID         string          `json:"user_id"`
	Email          string          `json:"email"`
	Role           RoleType        `json:"role"`
	Hash           string          `json:"hash"`
	RedirectTarget string          `json:"redirect_target"`
	RawProfile     json.RawMessage `json:"raw_profile,omitempty"`
}

// Store persists at most one Identity. Load returns (nil, nil) when no
// identity is stored.
type Store interface {
	Save(identity *Identity) error
	Load() (*Identity, error)
	Clear() error
}

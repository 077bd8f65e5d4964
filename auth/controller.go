// Package auth drives the sign-in handshake against the care console
// backend: password login, optional second-factor verification, federated
// sign-in, signup, and the password-reset pair. The controller owns the
// pending-authentication state between the first and second factor and is
// the only writer of the session store.
package auth

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-care-console/console"
	"github.com/jrsteele09/go-care-console/gateway"
	"github.com/jrsteele09/go-care-console/session"
)

// State is the handshake position. Transitions:
// LoggedOut -> AwaitingFirstFactor -> AwaitingSecondFactor -> Authenticated,
// with the second-factor step skipped when the account has none configured,
// and any state back to LoggedOut on explicit cancel.
type State string

const (
	StateLoggedOut            State = "logged_out"
	StateAwaitingFirstFactor  State = "awaiting_first_factor"
	StateAwaitingSecondFactor State = "awaiting_second_factor"
	StateAuthenticated        State = "authenticated"
)

const (
	defaultRedirectTarget = "/dashboard"

	// resetRequestedMessage is returned for every reset request, whether or
	// not the email maps to an account. Account enumeration stays impossible
	// even if the service's own wording ever diverges.
	resetRequestedMessage = "If an account exists for that email, a reset link has been sent."

	credentialsRequiredMessage = "Email and password are required."
	codeRequiredMessage        = "Enter the 6-digit verification code."
	sessionExpiredMessage      = "Your sign-in session has expired. Please start again."
)

// PendingAuthentication exists only between a first-factor acceptance that
// demands a code and the code's verification. A second-factor submission is
// valid only while this is live.
type PendingAuthentication struct {
	UserID         string
	AwaitingFactor bool
}

// Outcome is the result of a handshake step that reached the service.
// Exactly one of SecondFactorRequired or Identity is meaningful.
type Outcome struct {
	SecondFactorRequired bool
	Message              string
	Identity             *session.Identity
}

// Controller is the auth handshake state machine.
type Controller struct {
	gw       Gateway
	store    session.Store
	surface  console.Surface
	audience session.Audience

	defaultRedirect string

	lock    sync.Mutex
	state   State
	pending *PendingAuthentication
}

// ControllerOption modifies a Controller during construction.
type ControllerOption func(*Controller)

// WithDefaultRedirect overrides the target used when the service supplies no
// redirect of its own.
func WithDefaultRedirect(target string) ControllerOption {
	return func(c *Controller) {
		c.defaultRedirect = target
	}
}

// NewController wires the handshake controller. audience is the surface the
// user signed in through (patient or provider); the server-reported role must
// be consistent with it before any identity is persisted.
func NewController(gw Gateway, store session.Store, surface console.Surface, audience session.Audience, options ...ControllerOption) (*Controller, error) {
	if gw == nil {
		return nil, errors.New("[NewController] gateway is required")
	}
	if store == nil {
		return nil, errors.New("[NewController] session store is required")
	}
	if surface == nil {
		return nil, errors.New("[NewController] surface is required")
	}

	controller := &Controller{
		gw:              gw,
		store:           store,
		surface:         surface,
		audience:        audience,
		defaultRedirect: defaultRedirectTarget,
		state:           StateLoggedOut,
	}

	for _, opt := range options {
		opt(controller)
	}

	return controller, nil
}

// State returns the current handshake position.
func (c *Controller) State() State {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state
}

// Pending returns a copy of the live pending authentication, or nil.
func (c *Controller) Pending() *PendingAuthentication {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.pending == nil {
		return nil
	}
	pending := *c.pending
	return &pending
}

// SubmitCredentials runs the first factor. Empty input fails locally with
// ValidationErr and no network call. A service demand for a second factor is
// neither success nor failure: the returned Outcome flags it and the
// controller waits in AwaitingSecondFactor.
func (c *Controller) SubmitCredentials(ctx context.Context, email, password string) (*Outcome, error) {
	if err := ValidateCredentials(email, password); err != nil {
		c.surface.RenderError(credentialsRequiredMessage)
		return nil, err
	}

	c.setState(StateAwaitingFirstFactor, nil)

	result, err := c.gw.Login(ctx, email, password)
	if err != nil {
		c.setState(StateAwaitingFirstFactor, nil)
		c.surface.RenderError(gateway.UserMessage(err))
		return nil, errors.Wrap(err, "[Controller.SubmitCredentials] login")
	}

	if result.TwoFactorRequired() {
		c.setState(StateAwaitingSecondFactor, &PendingAuthentication{
			UserID:         result.UserID.String(),
			AwaitingFactor: true,
		})
		log.Debug().Str("user_id", result.UserID.String()).Msg("second factor required")
		return &Outcome{SecondFactorRequired: true, Message: result.Message}, nil
	}

	return c.finalize(identityFromLogin(result))
}

// SubmitSecondFactor verifies the one-time code for the pending user. With
// no live pending authentication (handshake abandoned or process restarted)
// it fails with SessionExpiredErr and routes back to first-factor entry.
func (c *Controller) SubmitSecondFactor(ctx context.Context, code string) (*Outcome, error) {
	if err := ValidateOneTimeCode(code); err != nil {
		c.surface.RenderError(codeRequiredMessage)
		return nil, err
	}

	c.lock.Lock()
	pending := c.pending
	if pending == nil || !pending.AwaitingFactor {
		c.state = StateAwaitingFirstFactor
		c.pending = nil
		c.lock.Unlock()
		c.surface.RenderError(sessionExpiredMessage)
		return nil, SessionExpiredErr
	}
	userID := pending.UserID
	c.lock.Unlock()

	result, err := c.gw.VerifyTwoFactor(ctx, userID, code)
	if err != nil {
		// Invalid or expired codes leave the handshake in place; the user
		// retries or cancels.
		c.surface.RenderError(gateway.UserMessage(err))
		return nil, errors.Wrap(err, "[Controller.SubmitSecondFactor] verify")
	}

	return c.finalize(identityFromLogin(result))
}

// CompleteWithFederatedToken finishes sign-in with a Google ID token
// credential, bypassing password entry.
func (c *Controller) CompleteWithFederatedToken(ctx context.Context, credential string) (*Outcome, error) {
	if strings.TrimSpace(credential) == "" {
		c.surface.RenderError(credentialsRequiredMessage)
		return nil, errors.Wrap(ValidationErr, "credential is required")
	}

	c.setState(StateAwaitingFirstFactor, nil)

	result, err := c.gw.GoogleOneTap(ctx, credential)
	if err != nil {
		c.surface.RenderError(gateway.UserMessage(err))
		return nil, errors.Wrap(err, "[Controller.CompleteWithFederatedToken] one-tap")
	}

	if !result.Success {
		message := result.Message
		if message == "" {
			message = "Authentication failed"
		}
		c.surface.RenderError(message)
		return nil, errors.Wrap(FederatedAuthErr, message)
	}

	var user gateway.FederatedUser
	if err := json.Unmarshal(result.Data.User, &user); err != nil {
		c.surface.RenderError(gateway.UserMessage(err))
		return nil, errors.Wrap(err, "[Controller.CompleteWithFederatedToken] decode user")
	}

	return c.finalize(&session.Identity{
		UserID:         user.ID.String(),
		Email:          user.Email,
		Role:           parseRole(user.Role),
		Hash:           result.Data.Hash,
		RedirectTarget: result.Data.RedirectURL,
		RawProfile:     result.Data.User,
	})
}

// Cancel abandons the handshake from any state.
func (c *Controller) Cancel() {
	c.setState(StateLoggedOut, nil)
}

// Logout destroys the persisted identity and returns to LoggedOut.
func (c *Controller) Logout() error {
	c.setState(StateLoggedOut, nil)
	if err := c.store.Clear(); err != nil {
		return errors.Wrap(err, "[Controller.Logout] clear session")
	}
	return nil
}

// finalize is the shared terminal-success path: gate the role against the
// selected audience, persist the identity, and hand navigation to the
// surface. On a mismatch the identity is never stored.
func (c *Controller) finalize(identity *session.Identity) (*Outcome, error) {
	if !c.audience.Allows(identity.Role) {
		c.setState(StateAwaitingFirstFactor, nil)
		c.surface.RenderError(roleMismatchMessage(c.audience))
		log.Warn().Str("role", string(identity.Role)).Str("audience", string(c.audience)).Msg("role mismatch, session discarded")
		return nil, RoleMismatchErr
	}

	if err := c.store.Save(identity); err != nil {
		c.setState(StateAwaitingFirstFactor, nil)
		c.surface.RenderError(gateway.UserMessage(err))
		return nil, errors.Wrap(err, "[Controller.finalize] persist identity")
	}

	c.setState(StateAuthenticated, nil)

	target := identity.RedirectTarget
	if target == "" {
		target = c.defaultRedirect
	}
	c.surface.Navigate(target)

	return &Outcome{Identity: identity}, nil
}

func (c *Controller) setState(state State, pending *PendingAuthentication) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.state = state
	c.pending = pending
}

func identityFromLogin(result *gateway.LoginResult) *session.Identity {
	return &session.Identity{
		UserID:         result.ID.String(),
		Email:          result.Email,
		Role:           parseRole(result.Role),
		Hash:           result.Hash,
		RedirectTarget: result.RedirectURL,
		RawProfile:     result.Raw,
	}
}

func parseRole(raw string) session.RoleType {
	return session.RoleType(strings.ToLower(strings.TrimSpace(raw)))
}

func roleMismatchMessage(audience session.Audience) string {
	if audience == session.AudienceProvider {
		return "This account is not registered as a provider. Use the patient sign-in."
	}
	return "This account is registered as a provider. Use the provider sign-in."
}

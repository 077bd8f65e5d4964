package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jrsteele09/go-care-console/auth"
	"github.com/jrsteele09/go-care-console/chat"
	"github.com/jrsteele09/go-care-console/gateway"
	"github.com/jrsteele09/go-care-console/internal/config"
	"github.com/jrsteele09/go-care-console/session"
)

// consoleApp is the interactive shell: a sign-in loop followed by a chat
// loop. All flow logic lives in the auth and chat packages; this only reads
// lines and prints.
type consoleApp struct {
	config  config.Config
	gw      *gateway.Client
	store   session.Store
	surface terminalSurface
	input   *bufio.Scanner
	eof     bool
}

func newConsoleApp(c config.Config, gw *gateway.Client, store session.Store) *consoleApp {
	return &consoleApp{
		config: c,
		gw:     gw,
		store:  store,
		input:  bufio.NewScanner(os.Stdin),
	}
}

func (a *consoleApp) Run(ctx context.Context) error {
	identity, err := a.store.Load()
	if err != nil {
		return err
	}
	if identity == nil {
		identity = a.signIn(ctx)
		if identity == nil {
			return nil
		}
	} else {
		fmt.Printf("Welcome back, %s\n", identity.Email)
	}
	return a.chatLoop(ctx, identity)
}

func (a *consoleApp) chooseAudience() session.Audience {
	for {
		switch a.prompt("surface (patient/provider): ") {
		case "patient", "":
			return session.AudiencePatient
		case "provider":
			return session.AudienceProvider
		}
	}
}

// signIn runs the handshake until an identity is persisted or the user
// quits. Returns nil on quit.
func (a *consoleApp) signIn(ctx context.Context) *session.Identity {
	audience := a.chooseAudience()

	controller, err := auth.NewController(a.gw, a.store, a.surface, audience)
	if err != nil {
		a.surface.RenderError(err.Error())
		return nil
	}

	for {
		fmt.Println("Commands: login, google, signup, forgot, reset, quit")
		switch a.prompt("> ") {
		case "login":
			email := a.prompt("email: ")
			password := a.prompt("password: ")
			outcome, err := controller.SubmitCredentials(ctx, email, password)
			if err != nil {
				continue
			}
			if outcome.SecondFactorRequired {
				if outcome.Message != "" {
					fmt.Println(outcome.Message)
				}
				outcome, err = controller.SubmitSecondFactor(ctx, a.prompt("code: "))
				if err != nil {
					continue
				}
			}
			return outcome.Identity
		case "google":
			identity := a.googleSignIn(ctx, controller)
			if identity != nil {
				return identity
			}
		case "signup":
			a.signup(ctx, controller, audience)
		case "forgot":
			if message, err := controller.RequestPasswordReset(ctx, a.prompt("email: ")); err == nil {
				fmt.Println(message)
			}
		case "reset":
			token := a.prompt("token: ")
			password := a.prompt("new password: ")
			if message, err := controller.ApplyPasswordReset(ctx, token, password); err == nil {
				fmt.Println(message)
			}
		case "quit", "":
			controller.Cancel()
			return nil
		}
	}
}

func (a *consoleApp) googleSignIn(ctx context.Context, controller *auth.Controller) *session.Identity {
	clientID := a.config.GetGoogleClientID()
	if clientID == "" {
		a.surface.RenderError("Federated sign-in is not configured (GOOGLE_CLIENT_ID).")
		return nil
	}

	signIn := auth.NewGoogleSignIn(clientID, a.config.GetGoogleClientSecret(), a.config.GetGoogleRedirectURL())
	fmt.Println("Visit and authorize:")
	fmt.Println("  " + signIn.AuthURL(uuid.New().String()))

	credential, err := signIn.Exchange(ctx, a.prompt("authorization code: "))
	if err != nil {
		a.surface.RenderError(gateway.UserMessage(err))
		return nil
	}

	if claims, err := auth.PeekFederatedClaims(credential); err == nil && claims.Email != "" {
		fmt.Printf("Signing in as %s\n", claims.Email)
	}

	outcome, err := controller.CompleteWithFederatedToken(ctx, credential)
	if err != nil {
		return nil
	}
	return outcome.Identity
}

func (a *consoleApp) signup(ctx context.Context, controller *auth.Controller, audience session.Audience) {
	params := auth.SignupParams{
		Email:            a.prompt("email: "),
		Password:         a.prompt("password: "),
		Audience:         audience,
		HasSignedBAA:     a.prompt("accept the BAA? (y/n): ") == "y",
		TwoFactorEnabled: a.prompt("enable 2FA? (y/n): ") == "y",
	}
	if audience == session.AudienceProvider {
		params.ProviderID = a.prompt("provider ID: ")
	}
	if created, err := controller.Signup(ctx, params); err == nil {
		fmt.Printf("Account created for %s. Use login to continue.\n", created.Email)
	}
}

func (a *consoleApp) chatLoop(ctx context.Context, identity *session.Identity) error {
	orchestrator, err := chat.NewOrchestrator(a.gw, a.surface, identity.UserID)
	if err != nil {
		return err
	}
	sessionID := uuid.New().String()

	fmt.Println("Chat ready. /attach <path>, /record <path>, /remove <id>, /list, /title <t>, /suggest <text>, /logout")
	for {
		line := a.prompt("> ")
		switch {
		case line == "":
			if a.eof {
				return nil
			}
			continue
		case line == "/logout":
			controller, err := auth.NewController(a.gw, a.store, a.surface, session.AudienceFor(identity.Role))
			if err == nil {
				_ = controller.Logout()
			}
			fmt.Println("Logged out.")
			return nil
		case line == "/list":
			for _, att := range orchestrator.PendingAttachments() {
				fmt.Printf("  %s  %s (%s)\n", att.ID, att.DisplayName, att.Kind)
			}
		case strings.HasPrefix(line, "/attach "):
			a.attach(orchestrator, strings.TrimPrefix(line, "/attach "), chat.AttachmentFile)
		case strings.HasPrefix(line, "/record "):
			a.attach(orchestrator, strings.TrimPrefix(line, "/record "), chat.AttachmentRecording)
		case strings.HasPrefix(line, "/remove "):
			if !orchestrator.RemoveAttachment(strings.TrimSpace(strings.TrimPrefix(line, "/remove "))) {
				a.surface.RenderError("No attachment with that id.")
			}
		case strings.HasPrefix(line, "/title "):
			orchestrator.SetCustomTitle(strings.TrimPrefix(line, "/title "))
		case strings.HasPrefix(line, "/suggest "):
			for _, s := range orchestrator.Suggest(ctx, strings.TrimPrefix(line, "/suggest ")) {
				fmt.Printf("  %s\n", s)
			}
		default:
			// Errors are already rendered through the surface.
			_, _ = orchestrator.SendTurn(ctx, line, sessionID)
			if title := orchestrator.Title(); title != "" {
				fmt.Printf("[%s]\n", title)
			}
		}
	}
}

func (a *consoleApp) attach(orchestrator *chat.Orchestrator, path string, kind chat.AttachmentKind) {
	path = strings.TrimSpace(path)
	data, err := os.ReadFile(path)
	if err != nil {
		a.surface.RenderError(fmt.Sprintf("Could not read %s.", path))
		return
	}
	id := orchestrator.AddAttachment(chat.Attachment{
		Kind:        kind,
		DisplayName: filepath.Base(path),
		ContentType: contentTypeFor(path),
		Data:        data,
	})
	fmt.Printf("Attached %s (%s)\n", filepath.Base(path), id)
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webm":
		return "audio/webm"
	case ".wav":
		return "audio/wav"
	default:
		return "application/octet-stream"
	}
}

func (a *consoleApp) prompt(label string) string {
	fmt.Print(label)
	if !a.input.Scan() {
		a.eof = true
		return ""
	}
	return strings.TrimSpace(a.input.Text())
}

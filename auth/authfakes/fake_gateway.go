package authfakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-care-console/auth"
	"github.com/jrsteele09/go-care-console/gateway"
)

var _ auth.Gateway = (*FakeGateway)(nil)

// FakeGateway is a scriptable auth.Gateway. Set the *Result/*Err fields to
// choose each endpoint's behavior; all calls are recorded.
type FakeGateway struct {
	lock sync.Mutex

	LoginCalls  int
	LoginEmails []string
	LoginResult *gateway.LoginResult
	LoginErr    error

	VerifyCalls   int
	VerifyUserIDs []string
	VerifyCodes   []string
	VerifyResult  *gateway.LoginResult
	VerifyErr     error

	OneTapCalls       int
	OneTapCredentials []string
	OneTapResult      *gateway.FederatedResult
	OneTapErr         error

	ForgotCalls  int
	ForgotEmails []string
	ForgotFn     func(email string) (*gateway.StatusResult, error)
	ForgotErr    error

	ResetCalls  int
	ResetTokens []string
	ResetResult *gateway.StatusResult
	ResetErr    error

	CreateCalls    int
	CreateRequests []gateway.SignupRequest
	CreateResult   *gateway.CreatedUser
	CreateErr      error
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

func (fg *FakeGateway) Login(_ context.Context, email, _ string) (*gateway.LoginResult, error) {
	fg.lock.Lock()
	defer fg.lock.Unlock()
	fg.LoginCalls++
	fg.LoginEmails = append(fg.LoginEmails, email)
	return fg.LoginResult, fg.LoginErr
}

func (fg *FakeGateway) VerifyTwoFactor(_ context.Context, userID, otpCode string) (*gateway.LoginResult, error) {
	fg.lock.Lock()
	defer fg.lock.Unlock()
	fg.VerifyCalls++
	fg.VerifyUserIDs = append(fg.VerifyUserIDs, userID)
	fg.VerifyCodes = append(fg.VerifyCodes, otpCode)
	return fg.VerifyResult, fg.VerifyErr
}

func (fg *FakeGateway) GoogleOneTap(_ context.Context, credential string) (*gateway.FederatedResult, error) {
	fg.lock.Lock()
	defer fg.lock.Unlock()
	fg.OneTapCalls++
	fg.OneTapCredentials = append(fg.OneTapCredentials, credential)
	return fg.OneTapResult, fg.OneTapErr
}

func (fg *FakeGateway) ForgotPassword(_ context.Context, email string) (*gateway.StatusResult, error) {
	fg.lock.Lock()
	defer fg.lock.Unlock()
	fg.ForgotCalls++
	fg.ForgotEmails = append(fg.ForgotEmails, email)
	if fg.ForgotErr != nil {
		return nil, fg.ForgotErr
	}
	if fg.ForgotFn != nil {
		return fg.ForgotFn(email)
	}
	return &gateway.StatusResult{Status: "success"}, nil
}

func (fg *FakeGateway) ResetPassword(_ context.Context, token, _ string) (*gateway.StatusResult, error) {
	fg.lock.Lock()
	defer fg.lock.Unlock()
	fg.ResetCalls++
	fg.ResetTokens = append(fg.ResetTokens, token)
	return fg.ResetResult, fg.ResetErr
}

func (fg *FakeGateway) CreateUser(_ context.Context, req gateway.SignupRequest) (*gateway.CreatedUser, error) {
	fg.lock.Lock()
	defer fg.lock.Unlock()
	fg.CreateCalls++
	fg.CreateRequests = append(fg.CreateRequests, req)
	return fg.CreateResult, fg.CreateErr
}

package chatfakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-care-console/chat"
	"github.com/jrsteele09/go-care-console/gateway"
)

var _ chat.Gateway = (*FakeGateway)(nil)

// SentMessage records one SendMessage call.
type SentMessage struct {
	UserID    string
	SessionID string
	Message   string
}

// FakeGateway is a scriptable chat.Gateway. The *Fn hooks run outside the
// recording lock so tests can inject latency per call.
type FakeGateway struct {
	lock sync.Mutex

	UploadFn       func(ctx context.Context, req gateway.UploadRequest) (*gateway.UploadResult, error)
	uploadRequests []gateway.UploadRequest

	SendFn       func(ctx context.Context, userID, sessionID, message string) (*gateway.ChatRecord, error)
	sentMessages []SentMessage

	TitleFn    func(ctx context.Context, message string) (string, error)
	titleCalls int

	AutocompleteFn    func(ctx context.Context, text string) ([]string, error)
	autocompleteCalls int
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

func (fg *FakeGateway) Upload(ctx context.Context, req gateway.UploadRequest) (*gateway.UploadResult, error) {
	fg.lock.Lock()
	fg.uploadRequests = append(fg.uploadRequests, req)
	fn := fg.UploadFn
	fg.lock.Unlock()

	if fn == nil {
		return &gateway.UploadResult{Status: "success"}, nil
	}
	return fn(ctx, req)
}

func (fg *FakeGateway) SendMessage(ctx context.Context, userID, sessionID, message string) (*gateway.ChatRecord, error) {
	fg.lock.Lock()
	fg.sentMessages = append(fg.sentMessages, SentMessage{UserID: userID, SessionID: sessionID, Message: message})
	fn := fg.SendFn
	fg.lock.Unlock()

	if fn == nil {
		return &gateway.ChatRecord{Messages: []gateway.ChatMessage{
			{Role: "user", Content: message},
			{Role: "assistant", Content: "ok"},
		}}, nil
	}
	return fn(ctx, userID, sessionID, message)
}

func (fg *FakeGateway) GenerateTitle(ctx context.Context, message string) (string, error) {
	fg.lock.Lock()
	fg.titleCalls++
	fn := fg.TitleFn
	fg.lock.Unlock()

	if fn == nil {
		return "", nil
	}
	return fn(ctx, message)
}

func (fg *FakeGateway) Autocomplete(ctx context.Context, text string) ([]string, error) {
	fg.lock.Lock()
	fg.autocompleteCalls++
	fn := fg.AutocompleteFn
	fg.lock.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(ctx, text)
}

// UploadRequests returns a snapshot of recorded uploads.
func (fg *FakeGateway) UploadRequests() []gateway.UploadRequest {
	fg.lock.Lock()
	defer fg.lock.Unlock()
	return append([]gateway.UploadRequest(nil), fg.uploadRequests...)
}

// SentMessages returns a snapshot of recorded sends.
func (fg *FakeGateway) SentMessages() []SentMessage {
	fg.lock.Lock()
	defer fg.lock.Unlock()
	return append([]SentMessage(nil), fg.sentMessages...)
}

// TitleCalls returns how many times GenerateTitle was invoked.
func (fg *FakeGateway) TitleCalls() int {
	fg.lock.Lock()
	defer fg.lock.Unlock()
	return fg.titleCalls
}

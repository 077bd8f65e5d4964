package chat_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-care-console/chat"
	"github.com/jrsteele09/go-care-console/chat/chatfakes"
	"github.com/jrsteele09/go-care-console/console"
	"github.com/jrsteele09/go-care-console/console/consolefakes"
	"github.com/jrsteele09/go-care-console/gateway"
)

const (
	testUserID    = "7"
	testSessionID = "session-1"
)

type turnFixture struct {
	gw           *chatfakes.FakeGateway
	surface      *consolefakes.FakeSurface
	orchestrator *chat.Orchestrator
}

func setupTurnFixture(t *testing.T) *turnFixture {
	t.Helper()

	gw := chatfakes.NewFakeGateway()
	surface := consolefakes.NewFakeSurface()

	orchestrator, err := chat.NewOrchestrator(gw, surface, testUserID)
	require.NoError(t, err)

	return &turnFixture{gw: gw, surface: surface, orchestrator: orchestrator}
}

func TestSendTurn_EmptyTurnNeverReachesNetwork(t *testing.T) {
	f := setupTurnFixture(t)

	_, err := f.orchestrator.SendTurn(context.Background(), "   ", testSessionID)
	require.ErrorIs(t, err, chat.EmptyTurnErr)
	require.Empty(t, f.gw.UploadRequests())
	require.Empty(t, f.gw.SentMessages())
	require.Empty(t, f.surface.Echoes)
}

func TestSendTurn_TextOnlyBodyHasNoSeparatorArtifacts(t *testing.T) {
	f := setupTurnFixture(t)

	reply, err := f.orchestrator.SendTurn(context.Background(), "hello", testSessionID)
	require.NoError(t, err)
	require.Equal(t, "ok", reply)

	sent := f.gw.SentMessages()
	require.Len(t, sent, 1)
	require.Equal(t, "hello", sent[0].Message)
	require.Equal(t, testUserID, sent[0].UserID)
	require.Equal(t, testSessionID, sent[0].SessionID)
}

// Context order must equal attachment submission order even when the later
// attachment's upload resolves first.
func TestSendTurn_ContextOrderMatchesSubmissionOrder(t *testing.T) {
	f := setupTurnFixture(t)

	f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentFile, DisplayName: "a.pdf"})
	f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentFile, DisplayName: "b.pdf"})

	// Latency inversely correlated with submission order: a.pdf is slow,
	// b.pdf returns immediately.
	f.gw.UploadFn = func(_ context.Context, req gateway.UploadRequest) (*gateway.UploadResult, error) {
		switch req.FileName {
		case "a.pdf":
			time.Sleep(50 * time.Millisecond)
			return &gateway.UploadResult{Analysis: "X"}, nil
		default:
			return &gateway.UploadResult{Analysis: "Y"}, nil
		}
	}

	_, err := f.orchestrator.SendTurn(context.Background(), "hello", testSessionID)
	require.NoError(t, err)

	sent := f.gw.SentMessages()
	require.Len(t, sent, 1)
	require.Equal(t, "X\nY\n\nhello", sent[0].Message)
}

func TestSendTurn_EchoRendersBeforeUploadsAndSendAfterAll(t *testing.T) {
	f := setupTurnFixture(t)
	f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentFile, DisplayName: "a.pdf"})
	f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentFile, DisplayName: "b.pdf"})

	var lock sync.Mutex
	var events []string
	record := func(event string) {
		lock.Lock()
		defer lock.Unlock()
		events = append(events, event)
	}

	f.surface.OnEcho = func(console.EchoTurn) { record("echo") }
	f.gw.UploadFn = func(_ context.Context, req gateway.UploadRequest) (*gateway.UploadResult, error) {
		record("upload")
		return &gateway.UploadResult{Analysis: req.FileName}, nil
	}
	f.gw.SendFn = func(_ context.Context, _, _, message string) (*gateway.ChatRecord, error) {
		record("send")
		return &gateway.ChatRecord{Messages: []gateway.ChatMessage{{Role: "assistant", Content: "ok"}}}, nil
	}

	_, err := f.orchestrator.SendTurn(context.Background(), "hi", testSessionID)
	require.NoError(t, err)

	lock.Lock()
	defer lock.Unlock()
	require.Equal(t, []string{"echo", "upload", "upload", "send"}, events)
}

func TestSendTurn_AnyUploadFailureAbortsWholeTurn(t *testing.T) {
	f := setupTurnFixture(t)
	f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentFile, DisplayName: "good.pdf"})
	f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentFile, DisplayName: "bad.pdf"})

	f.gw.UploadFn = func(_ context.Context, req gateway.UploadRequest) (*gateway.UploadResult, error) {
		if req.FileName == "bad.pdf" {
			return nil, errors.New("storage rejected the file")
		}
		return &gateway.UploadResult{Analysis: "fine"}, nil
	}

	_, err := f.orchestrator.SendTurn(context.Background(), "hello", testSessionID)
	require.ErrorIs(t, err, chat.UploadFailedErr)

	// Nothing committed, one aggregated message, queue retained.
	require.Empty(t, f.gw.SentMessages())
	require.Len(t, f.surface.Errors, 1)
	require.Len(t, f.orchestrator.PendingAttachments(), 2)
}

func TestSendTurn_QueueClearedOnlyAfterReplyRendered(t *testing.T) {
	f := setupTurnFixture(t)
	f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentFile, DisplayName: "a.pdf"})

	t.Run("send failure keeps queue", func(t *testing.T) {
		f.gw.SendFn = func(context.Context, string, string, string) (*gateway.ChatRecord, error) {
			return nil, &gateway.ServiceError{StatusCode: 500, Detail: "boom"}
		}
		_, err := f.orchestrator.SendTurn(context.Background(), "hello", testSessionID)
		require.Error(t, err)
		require.Len(t, f.orchestrator.PendingAttachments(), 1)
	})

	t.Run("success clears queue", func(t *testing.T) {
		f.gw.SendFn = nil
		_, err := f.orchestrator.SendTurn(context.Background(), "hello", testSessionID)
		require.NoError(t, err)
		require.Empty(t, f.orchestrator.PendingAttachments())
		require.NotEmpty(t, f.surface.Replies)
	})
}

func TestSendTurn_EchoUsesRawTextAndDisplayNames(t *testing.T) {
	f := setupTurnFixture(t)
	f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentRecording, DisplayName: "memo.webm"})

	_, err := f.orchestrator.SendTurn(context.Background(), "listen to this", testSessionID)
	require.NoError(t, err)

	require.Len(t, f.surface.Echoes, 1)
	require.Equal(t, "listen to this", f.surface.Echoes[0].Text)
	require.Equal(t, []string{"memo.webm"}, f.surface.Echoes[0].AttachmentNames)
}

func TestSendTurn_RecordingsUploadWithRecordingFlag(t *testing.T) {
	f := setupTurnFixture(t)
	f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentRecording, DisplayName: "memo.webm"})
	f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentFile, DisplayName: "scan.pdf"})

	_, err := f.orchestrator.SendTurn(context.Background(), "hello", testSessionID)
	require.NoError(t, err)

	uploads := f.gw.UploadRequests()
	require.Len(t, uploads, 2)
	for _, upload := range uploads {
		require.Equal(t, testUserID, upload.PatientID)
		require.Equal(t, testSessionID, upload.SessionID)
		if upload.FileName == "memo.webm" {
			require.True(t, upload.IsRecording)
		} else {
			require.False(t, upload.IsRecording)
		}
	}
}

type fakePlayback struct {
	stopped bool
}

func (fp *fakePlayback) Stop() { fp.stopped = true }

func TestRemoveAttachment_StopsPlaybackFirst(t *testing.T) {
	f := setupTurnFixture(t)

	playback := &fakePlayback{}
	id := f.orchestrator.AddAttachment(chat.Attachment{
		Kind:        chat.AttachmentRecording,
		DisplayName: "memo.webm",
		Playback:    playback,
	})

	require.True(t, f.orchestrator.RemoveAttachment(id))
	require.True(t, playback.stopped)
	require.Empty(t, f.orchestrator.PendingAttachments())
}

func TestRemoveAttachment_UnknownID(t *testing.T) {
	f := setupTurnFixture(t)
	require.False(t, f.orchestrator.RemoveAttachment("missing"))
}

func TestAddAttachment_AssignsUniqueIDs(t *testing.T) {
	f := setupTurnFixture(t)

	first := f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentFile, DisplayName: "a.pdf"})
	second := f.orchestrator.AddAttachment(chat.Attachment{Kind: chat.AttachmentFile, DisplayName: "b.pdf"})

	require.NotEmpty(t, first)
	require.NotEmpty(t, second)
	require.NotEqual(t, first, second)

	pending := f.orchestrator.PendingAttachments()
	require.Len(t, pending, 2)
	require.True(t, strings.HasSuffix(pending[0].DisplayName, "a.pdf"))
}

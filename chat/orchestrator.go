// Package chat composes conversation turns: it queues attachments, uploads
// them concurrently at send time, merges the extracted context into one
// composite message in submission order, and reconciles the single reply.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/jrsteele09/go-care-console/console"
	"github.com/jrsteele09/go-care-console/gateway"
)

const (
	emptyTurnMessage    = "Type a message or attach a file first."
	uploadFailedMessage = "One or more attachments failed to upload. Your message was not sent."
)

// Orchestrator owns the pending attachment collection and drives one turn at
// a time. The detached title task is the only work that outlives SendTurn.
type Orchestrator struct {
	gw      Gateway
	surface console.Surface
	userID  string

	lock        sync.Mutex
	attachments []Attachment

	titleLock       sync.Mutex
	title           string
	titleCustomized bool
}

// NewOrchestrator wires the turn orchestrator for one authenticated user.
func NewOrchestrator(gw Gateway, surface console.Surface, userID string) (*Orchestrator, error) {
	if gw == nil {
		return nil, errors.New("[NewOrchestrator] gateway is required")
	}
	if surface == nil {
		return nil, errors.New("[NewOrchestrator] surface is required")
	}
	if userID == "" {
		return nil, errors.New("[NewOrchestrator] userID is required")
	}

	return &Orchestrator{gw: gw, surface: surface, userID: userID}, nil
}

// AddAttachment queues an attachment for the next turn and returns its
// assigned id. Nothing is uploaded until send time.
func (o *Orchestrator) AddAttachment(att Attachment) string {
	att.ID = uuid.New().String()

	o.lock.Lock()
	defer o.lock.Unlock()
	o.attachments = append(o.attachments, att)
	return att.ID
}

// RemoveAttachment drops a queued attachment by id, stopping any live audio
// playback first. It reports whether the id was found.
func (o *Orchestrator) RemoveAttachment(id string) bool {
	o.lock.Lock()
	defer o.lock.Unlock()

	for i, att := range o.attachments {
		if att.ID != id {
			continue
		}
		if att.Playback != nil {
			att.Playback.Stop()
		}
		o.attachments = append(o.attachments[:i], o.attachments[i+1:]...)
		return true
	}
	return false
}

// PendingAttachments returns a snapshot of the queued attachments in
// submission order.
func (o *Orchestrator) PendingAttachments() []Attachment {
	o.lock.Lock()
	defer o.lock.Unlock()
	return append([]Attachment(nil), o.attachments...)
}

// SendTurn dispatches one conversation turn and returns the assistant reply.
// The ordering contract: the echo renders before any upload starts; all
// uploads run concurrently and every one must resolve before the composite
// send begins; extracted context is reassembled in submission order no
// matter which upload finishes first. Any upload failure aborts the whole
// turn with a single error and the queue is kept. The queue is cleared only
// after the reply has rendered.
func (o *Orchestrator) SendTurn(ctx context.Context, text, sessionID string) (string, error) {
	o.lock.Lock()
	pending := append([]Attachment(nil), o.attachments...)
	o.lock.Unlock()

	if strings.TrimSpace(text) == "" && len(pending) == 0 {
		o.surface.RenderError(emptyTurnMessage)
		return "", EmptyTurnErr
	}

	o.surface.RenderEcho(console.EchoTurn{
		Text:            text,
		AttachmentNames: displayNames(pending),
	})

	contexts := make([]ExtractedContext, len(pending))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, att := range pending {
		i, att := i, att
		group.Go(func() error {
			result, err := o.gw.Upload(groupCtx, gateway.UploadRequest{
				PatientID:   o.userID,
				SessionID:   sessionID,
				FileName:    att.DisplayName,
				ContentType: att.ContentType,
				Data:        att.Data,
				IsRecording: att.Kind == AttachmentRecording,
			})
			if err != nil {
				return errors.Wrapf(err, "upload %q", att.DisplayName)
			}
			contexts[i] = extractContext(att, result)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		o.surface.RenderError(uploadFailedMessage)
		return "", errors.Wrap(UploadFailedErr, err.Error())
	}

	composite := Compose(contexts, text)

	// Detached: a title failure or a slow title must never block or fail the
	// turn.
	go o.generateTitle(context.WithoutCancel(ctx), composite)

	record, err := o.gw.SendMessage(ctx, o.userID, sessionID, composite)
	if err != nil {
		o.surface.RenderError(gateway.UserMessage(err))
		return "", errors.Wrap(err, "[Orchestrator.SendTurn] send message")
	}

	reply, err := record.Reply()
	if err != nil {
		o.surface.RenderError(gateway.UserMessage(err))
		return "", errors.Wrap(err, "[Orchestrator.SendTurn] reply")
	}

	o.surface.RenderReply(reply)
	o.clearAttachments()

	return reply, nil
}

func (o *Orchestrator) clearAttachments() {
	o.lock.Lock()
	defer o.lock.Unlock()
	for _, att := range o.attachments {
		if att.Playback != nil {
			att.Playback.Stop()
		}
	}
	o.attachments = nil
}

func displayNames(attachments []Attachment) []string {
	if len(attachments) == 0 {
		return nil
	}
	names := make([]string, 0, len(attachments))
	for _, att := range attachments {
		names = append(names, att.DisplayName)
	}
	return names
}

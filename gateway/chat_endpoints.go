package gateway

import (
	"context"

	"github.com/pkg/errors"
)

// ChatMessage is one entry in a conversation transcript.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatRecord is the /chat/send response: the full stored transcript for the
// session, the last entry being the assistant's reply to this turn.
type ChatRecord struct {
	SessionID string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages"`
}

// Reply returns the assistant reply produced by the turn that fetched this
// record.
func (r *ChatRecord) Reply() (string, error) {
	if len(r.Messages) == 0 {
		return "", errors.New("[ChatRecord.Reply] service returned an empty transcript")
	}
	return r.Messages[len(r.Messages)-1].Content, nil
}

// SendMessage posts one composite message and returns the updated transcript.
func (c *Client) SendMessage(ctx context.Context, userID, sessionID, message string) (*ChatRecord, error) {
	body := map[string]string{
		"user_id":    userID,
		"session_id": sessionID,
		"message":    message,
	}
	var record ChatRecord
	if err := c.postJSON(ctx, "/chat/send", body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Autocomplete fetches text continuations for a partial input.
func (c *Client) Autocomplete(ctx context.Context, text string) ([]string, error) {
	var result struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.postJSON(ctx, "/chat/autocomplete", map[string]string{"text": text}, &result); err != nil {
		return nil, err
	}
	return result.Suggestions, nil
}

// GenerateTitle asks the service for a short conversation title seeded by the
// first message.
func (c *Client) GenerateTitle(ctx context.Context, message string) (string, error) {
	var result struct {
		Title string `json:"title"`
	}
	if err := c.postJSON(ctx, "/chat/generate_title", map[string]string{"message": message}, &result); err != nil {
		return "", err
	}
	return result.Title, nil
}

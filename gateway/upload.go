package gateway

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/pkg/errors"
)

// UploadRequest is one attachment destined for /upload/. IsRecording flags
// audio captured in the console, which the service transcribes instead of
// running document analysis.
type UploadRequest struct {
	PatientID   string
	SessionID   string
	FileName    string
	ContentType string
	Data        []byte
	IsRecording bool
}

// UploadResult carries whatever context the service extracted from the file.
// Both fields may be empty when the file type supports neither analysis nor
// transcription.
type UploadResult struct {
	Status     string `json:"status"`
	FileID     string `json:"file_id"`
	Analysis   string `json:"analysis"`
	Transcript string `json:"transcript"`
}

// Upload sends one attachment as a multipart form and returns the extraction
// result. Uploads for a turn are issued concurrently by the orchestrator;
// this method carries no shared state beyond the HTTP client.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	if err := form.WriteField("patient_id", req.PatientID); err != nil {
		return nil, errors.Wrap(err, "[gateway.Upload] patient_id field")
	}
	if err := form.WriteField("session_id", req.SessionID); err != nil {
		return nil, errors.Wrap(err, "[gateway.Upload] session_id field")
	}
	if err := form.WriteField("is_rec", strconv.FormatBool(req.IsRecording)); err != nil {
		return nil, errors.Wrap(err, "[gateway.Upload] is_rec field")
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+escapeQuotes(req.FileName)+`"`)
	if req.ContentType != "" {
		header.Set("Content-Type", req.ContentType)
	}
	part, err := form.CreatePart(header)
	if err != nil {
		return nil, errors.Wrap(err, "[gateway.Upload] file part")
	}
	if _, err := part.Write(req.Data); err != nil {
		return nil, errors.Wrap(err, "[gateway.Upload] file payload")
	}
	if err := form.Close(); err != nil {
		return nil, errors.Wrap(err, "[gateway.Upload] close form")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/", &body)
	if err != nil {
		return nil, errors.Wrap(err, "[gateway.Upload] build request")
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())

	var result UploadResult
	if err := c.do(httpReq, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func escapeQuotes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

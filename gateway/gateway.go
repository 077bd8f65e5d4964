// Package gateway is the JSON-over-HTTP client for the care console backend.
// It owns the wire formats and converts transport and service failures into the
// error taxonomy the controllers consume; it holds no flow state of its own.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout  = 60 * time.Second
	contentTypeJSON = "application/json"
)

// Client talks to the care console backend. All methods are safe for
// concurrent use; the zero value is not usable, construct with New.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the service at baseURL (no trailing slash).
func New(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[gateway.New] baseURL is required")
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// postJSON sends body as JSON to path and decodes a 2xx response into out.
// Non-2xx responses become a *ServiceError carrying the service's detail
// message; transport failures are wrapped with NetworkErr.
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "[gateway.postJSON] marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "[gateway.postJSON] build request")
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("path", req.URL.Path).Msg("request failed")
		return errors.Wrap(NetworkErr, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(NetworkErr, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serviceErrorFrom(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "[gateway.do] decode %s response", req.URL.Path)
	}
	return nil
}

// Package api is the HTTP client for the trip backend's REST interface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CredentialSource supplies the bearer token for authenticated calls and
// forgets it when the backend rejects it.
type CredentialSource interface {
	// Token returns the stored token or an error matching ErrNoCredential.
	Token(ctx context.Context) (string, error)
	// Purge removes the stored token.
	Purge(ctx context.Context) error
}

// Client talks to the trip backend. It never retries; every non-success
// status is returned as *Error.
type Client struct {
	baseURL  string
	http     *http.Client
	creds    CredentialSource
	observer Observer
}

// NewClient creates a Client for baseURL. A zero timeout leaves the
// transport's own limits in charge.
func NewClient(baseURL string, timeout time.Duration, creds CredentialSource, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		creds:    creds,
		observer: observer,
	}
}

// BaseURL returns the backend root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type call struct {
	method string
	path   string
	body   any
	out    any
	auth   bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()
	requestID := uuid.NewString()

	status, err := c.send(ctx, cl, requestID)

	c.observer.OnCall(ctx, CallEvent{
		Method:    cl.method,
		Path:      cl.path,
		Status:    status,
		Duration:  time.Since(start),
		RequestID: requestID,
		Err:       err,
	})
	return err
}

func (c *Client) send(ctx context.Context, cl call, requestID string) (int, error) {
	var token string
	if cl.auth {
		if c.creds == nil {
			return 0, ErrNoCredential
		}
		t, err := c.creds.Token(ctx)
		if err != nil {
			return 0, err
		}
		token = t
	}

	var reader io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && cl.auth {
		if err := c.creds.Purge(ctx); err != nil {
			return resp.StatusCode, errors.Join(buildError(resp.StatusCode, data), fmt.Errorf("forgetting stored credential: %w", err))
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, buildError(resp.StatusCode, data)
	}

	if cl.out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, cl.out); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, nil
}

func buildError(status int, body []byte) *Error {
	e := &Error{Status: status, Message: genericMessage(status)}
	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		e.Code = envelope.Code
		if envelope.Message != "" {
			e.Message = envelope.Message
			e.fromBody = true
		}
	}
	return e
}

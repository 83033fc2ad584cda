// Package httpclient provides the single shared request executor for the
// Insights backend. Two cross-cutting behaviours live here: outbound bearer
// token injection from the token store, and the forced-logout reaction to a
// 401 response.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/insightworks/insights-cli/tokenstore"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 15 * time.Second
	requestIDHdr   = "X-Request-ID"
)

// Config configures the shared client.
type Config struct {
	BaseURL string
	Store   tokenstore.Repo

	// Timeout applies to every request. Zero means the default.
	Timeout time.Duration

	// Transport overrides the underlying round tripper (primarily for tests).
	Transport http.RoundTripper

	Logger *zerolog.Logger
}

// Client executes every backend request. It holds no session state of its
// own; its side effects are visible only through the token store and the
// logout broadcaster.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   tokenstore.Repo
	logouts *LogoutBroadcaster
	log     zerolog.Logger
}

// New builds the shared client. Store and BaseURL are required.
func New(cfg Config) (*Client, error) {
	if cfg.Store == nil {
		return nil, errors.New("[httpclient.New] token store is required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("[httpclient.New] base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{store: cfg.Store, base: base},
		},
		store:   cfg.Store,
		logouts: NewLogoutBroadcaster(),
		log:     log,
	}, nil
}

// Logouts exposes the forced-logout broadcaster for subscription.
func (c *Client) Logouts() *LogoutBroadcaster {
	return c.logouts
}

// Do executes the request. On a 401 response the token store is cleared and
// the forced-logout notification dispatched before the response is returned;
// the caller still sees the original response. Any other status, and
// transport failures, leave the store untouched.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("request failed without response")
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Debug().Str("url", req.URL.String()).Msg("401 response, forcing logout")
		if err := c.store.Clear(); err != nil {
			c.log.Error().Err(err).Msg("clearing token store after 401")
		}
		c.logouts.Dispatch()
	}

	return resp, nil
}

// GetJSON issues a GET and decodes a JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
// A nil out discards the response body.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// PatchJSON issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) PatchJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE and discards any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[httpclient] encoding %s %s body", method, path)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return errors.Wrapf(err, "[httpclient] building %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "[httpclient] reading %s %s response", method, path)
	}

	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Status:      resp.StatusCode,
			Body:        data,
			ContentType: resp.Header.Get("Content-Type"),
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "[httpclient] decoding %s %s response", method, path)
	}
	return nil
}

// StatusError is a non-2xx backend response, body included so the error
// normalization layer can extract detail and field errors.
type StatusError struct {
	Status      int
	Body        []byte
	ContentType string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// bearerTransport attaches the Authorization header from the token store to
// each outbound request. When no token is stored the header is left entirely
// unset. A request id is attached for log correlation.
type bearerTransport struct {
	store tokenstore.Repo
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if token := t.store.Access(); token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	if clone.Header.Get(requestIDHdr) == "" {
		clone.Header.Set(requestIDHdr, uuid.NewString())
	}

	return t.base.RoundTrip(clone)
}

package api

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

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const refreshPath = "/auth/refresh-token"

// TokenStore is the slice of the session store the client needs.
type TokenStore interface {
	AccessToken() (string, bool)
	RefreshToken() (string, bool)
	SetTokens(access, refresh string) error
	Clear() error
}

type Config struct {
	BaseURL string
	Timeout time.Duration

	Store TokenStore

	// OnSessionExpired runs once after an unrecoverable refresh failure,
	// after the session entries have been cleared. This is where the
	// caller forces navigation back to login.
	OnSessionExpired func()

	Logger zerolog.Logger

	// HTTPClient overrides the default client. Mainly for tests.
	HTTPClient *http.Client
}

// Client issues requests against one configured base URL, attaching the
// current access token and recovering from token expiry at most once per
// request via the refresh endpoint.
type Client struct {
	baseURL   string
	http      *http.Client
	store     TokenStore
	onExpired func()
	log       zerolog.Logger

	// Concurrent 401s share a single refresh round trip.
	refresh singleflight.Group
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      httpClient,
		store:     cfg.Store,
		onExpired: cfg.OnSessionExpired,
		log:       cfg.Logger,
	}
}

// Binary is a raw download, used for the pdf/excel report exports.
type Binary struct {
	Data        []byte
	ContentType string
}

func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out, false)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, false)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, false)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, false)
}

// Download fetches a binary response, e.g. GET /reports/sales?format=pdf.
func (c *Client) Download(ctx context.Context, path string, params url.Values) (*Binary, error) {
	var b Binary
	if err := c.do(ctx, http.MethodGet, path, params, nil, &b, false); err != nil {
		return nil, err
	}
	return &b, nil
}

// do runs the request algorithm. retried is threaded explicitly so the
// refresh-and-replay path executes at most once per original request.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any, retried bool) error {
	req, err := c.newRequest(ctx, method, path, params, body, true)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	reader := decodedBody(resp)

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Bool("retried", retried).
		Msg("request completed")

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := decodeAPIError(resp.StatusCode, reader)
		if retried {
			// Second 401 after a replay is terminal.
			return apiErr
		}
		if err := c.refreshTokens(ctx); err != nil {
			return err
		}
		return c.do(ctx, method, path, params, body, out, true)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, reader)
	}

	switch v := out.(type) {
	case nil:
		return nil
	case *Binary:
		data, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("%s %s: read body: %w", method, path, err)
		}
		v.Data = data
		v.ContentType = resp.Header.Get("Content-Type")
		return nil
	default:
		if err := json.NewDecoder(reader).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
		return nil
	}
}

// refreshTokens exchanges the refresh token for a new token pair.
// Concurrent callers are collapsed into one refresh call; every waiter
// sees the shared outcome. Any failure clears the session and fires the
// session-expired hook exactly once.
func (c *Client) refreshTokens(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		refreshToken, ok := c.store.RefreshToken()
		if !ok {
			return nil, c.expireSession(fmt.Errorf("no refresh token"))
		}

		payload := struct {
			RefreshToken string `json:"refreshToken"`
		}{RefreshToken: refreshToken}

		req, err := c.newRequest(ctx, http.MethodPost, refreshPath, nil, payload, false)
		if err != nil {
			return nil, c.expireSession(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, c.expireSession(err)
		}
		defer resp.Body.Close()
		reader := decodedBody(resp)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, c.expireSession(decodeAPIError(resp.StatusCode, reader))
		}

		var tokens struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(reader).Decode(&tokens); err != nil {
			return nil, c.expireSession(fmt.Errorf("decode refresh response: %w", err))
		}
		if err := c.store.SetTokens(tokens.AccessToken, tokens.RefreshToken); err != nil {
			return nil, c.expireSession(err)
		}

		c.log.Info().Msg("access token refreshed")
		return nil, nil
	})
	return err
}

// expireSession clears the stored session and notifies the owner. It runs
// inside the singleflight callback, so concurrent failures collapse to one
// clear and one notification.
func (c *Client) expireSession(cause error) error {
	if err := c.store.Clear(); err != nil {
		c.log.Error().Err(err).Msg("failed to clear session")
	}
	c.log.Warn().Err(cause).Msg("session expired, cleared stored tokens")
	if c.onExpired != nil {
		c.onExpired()
	}
	return fmt.Errorf("token refresh failed: %w: %w", ErrSessionExpired, cause)
}

func (c *Client) newRequest(ctx context.Context, method, path string, params url.Values, body any, withAuth bool) (*http.Request, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if params != nil {
		req.URL.RawQuery = params.Encode()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		if token, ok := c.store.AccessToken(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func decodedBody(resp *http.Response) io.Reader {
	if resp.Header.Get("Content-Encoding") == "br" {
		return brotli.NewReader(resp.Body)
	}
	return resp.Body
}

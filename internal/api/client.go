// Package api implements the authenticated HTTP client every store and
// resource client in the SDK goes through. It owns bearer-token
// attachment, the single refresh-and-retry on 401, and the unauthorized
// callback that tells the session layer a credential died mid-flight.
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
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/klasora/console-go/internal/models"
	"github.com/klasora/console-go/internal/tokenstore"
	appErrors "github.com/klasora/console-go/pkg/errors"
	"github.com/klasora/console-go/pkg/metrics"
)

const refreshPath = "/api/auth/refresh"

// Envelope is the platform response contract: {data, error, pagination}.
type Envelope struct {
	Data       json.RawMessage    `json:"data,omitempty"`
	Error      *appErrors.Error   `json:"error,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Options configures a Client.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	Tokens         tokenstore.Store
	Logger         *zap.Logger
	Metrics        *metrics.Recorder
	OnUnauthorized func()
	// HTTPClient overrides the underlying transport, mainly for tests.
	HTTPClient *http.Client
}

// Client is the HTTP collaborator shared by the session store, the tenant
// store, and every resource client.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         tokenstore.Store
	logger         *zap.Logger
	metrics        *metrics.Recorder
	onUnauthorized func()

	// refreshMu single-flights the internal 401-triggered refresh.
	refreshMu sync.Mutex
}

// New constructs a Client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = tokenstore.NewMemory()
	}
	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		http:           httpClient,
		tokens:         tokens,
		logger:         logger,
		metrics:        opts.Metrics,
		onUnauthorized: opts.OnUnauthorized,
	}
}

// SetOnUnauthorized installs the session store's forced-logout hook.
// It is the only back-channel between the client and the session layer.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// SetTokens persists a fresh token pair.
func (c *Client) SetTokens(pair models.TokenPair, tenantID string) error {
	return c.tokens.Save(&tokenstore.Saved{Tokens: pair, TenantID: tenantID})
}

// ClearTokens discards any stored credentials.
func (c *Client) ClearTokens() {
	if err := c.tokens.Clear(); err != nil {
		c.logger.Warn("failed to clear tokens", zap.Error(err))
	}
}

// HasTokens reports whether stored credentials exist.
func (c *Client) HasTokens() bool {
	_, err := c.tokens.Load()
	return err == nil
}

// SavedTenantID returns the tenant id captured at login, if any.
func (c *Client) SavedTenantID() string {
	saved, err := c.tokens.Load()
	if err != nil {
		return ""
	}
	return saved.TenantID
}

// AccessTokenExpiry inspects the stored access token's exp claim without
// verifying the signature. Used for logging only; the client never
// refreshes proactively.
func (c *Client) AccessTokenExpiry() (time.Time, bool) {
	saved, err := c.tokens.Load()
	if err != nil || saved.Tokens.AccessToken == "" {
		return time.Time{}, false
	}
	claims := &models.JWTClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(saved.Tokens.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Do performs one authenticated request against the backend. The response
// envelope's data is decoded into out when out is non-nil; pagination is
// returned when the backend sent any. A 401 triggers exactly one internal
// refresh followed by one retry of the original request.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) (*models.Pagination, error) {
	return c.do(ctx, method, path, query, body, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, allowRetry bool) (*models.Pagination, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request body")
		}
		payload = encoded
	}

	resp, status, err := c.roundTrip(ctx, method, path, query, payload)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && allowRetry && path != refreshPath {
		if refreshErr := c.refreshOnce(ctx); refreshErr != nil {
			c.forceUnauthorized()
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
		}
		resp, status, err = c.roundTrip(ctx, method, path, query, payload)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			c.forceUnauthorized()
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
		}
	}

	if status < 200 || status > 299 {
		if resp.Error != nil {
			resp.Error.Status = status
			return nil, resp.Error
		}
		return nil, appErrors.FromStatus(status, "")
	}

	if out != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode response")
		}
	}
	return resp.Pagination, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte) (*Envelope, int, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if saved, loadErr := c.tokens.Load(); loadErr == nil && saved.Tokens.AccessToken != "" {
		tokenType := saved.Tokens.TokenType
		if tokenType == "" {
			tokenType = "Bearer"
		}
		req.Header.Set("Authorization", fmt.Sprintf("%s %s", tokenType, saved.Tokens.AccessToken))
	}

	start := time.Now()
	res, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.metrics.ObserveRequest(method, path, 0, duration)
		return nil, 0, appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, appErrors.ErrNetwork.Message)
	}
	defer res.Body.Close() //nolint:errcheck

	c.metrics.ObserveRequest(method, path, res.StatusCode, duration)
	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Duration("latency", duration),
	)

	envelope := &Envelope{}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "failed to read response")
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, envelope); err != nil {
			// Non-envelope body. Treat as opaque data for success statuses.
			if res.StatusCode >= 200 && res.StatusCode <= 299 {
				envelope.Data = raw
			}
		}
	}
	return envelope, res.StatusCode, nil
}

// Refresh exchanges the stored refresh token for a new pair and persists
// it. The session store's explicit refresh flow and the 401 retry both
// land here.
func (c *Client) Refresh(ctx context.Context) error {
	saved, err := c.tokens.Load()
	if err != nil || saved.Tokens.RefreshToken == "" {
		c.metrics.RecordRefresh("failure")
		return appErrors.Clone(appErrors.ErrUnauthorized, "no refresh token")
	}

	out := &models.RefreshResponse{}
	req := models.RefreshRequest{RefreshToken: saved.Tokens.RefreshToken}
	if _, err := c.do(ctx, http.MethodPost, refreshPath, nil, req, out, false); err != nil {
		c.metrics.RecordRefresh("failure")
		return err
	}

	pair := models.TokenPair{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		TokenType:    out.TokenType,
	}
	if pair.RefreshToken == "" {
		pair.RefreshToken = saved.Tokens.RefreshToken
	}
	if err := c.SetTokens(pair, saved.TenantID); err != nil {
		c.metrics.RecordRefresh("failure")
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist refreshed tokens")
	}
	c.metrics.RecordRefresh("success")
	return nil
}

// refreshOnce single-flights concurrent 401-triggered refreshes. The
// goroutine that loses the race reuses the winner's tokens instead of
// spending the refresh token twice.
func (c *Client) refreshOnce(ctx context.Context) error {
	before, _ := c.tokens.Load()

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if after, err := c.tokens.Load(); err == nil && before != nil &&
		after.Tokens.AccessToken != before.Tokens.AccessToken {
		return nil
	}
	return c.Refresh(ctx)
}

// forceUnauthorized clears credentials and notifies the session layer.
// Safe to call multiple times; last writer wins.
func (c *Client) forceUnauthorized() {
	c.ClearTokens()
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/token/refresh"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// HeaderRequestID is set on every request that does not already carry one
const HeaderRequestID = "X-Request-ID"

// TokenStore is the part of the token store the pipeline reads and writes
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(accessToken, refreshToken string) error
	ClearAuth() error
}

// Refresher exchanges a refresh token for a new pair
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*refresh.TokenPair, error)
}

// ExpiredFunc is called after an unrecoverable refresh failure, once the store is cleared
type ExpiredFunc func(err error)

// Transport authenticates outgoing requests with the stored bearer token and recovers
// from a 401 by refreshing the token and resending the request once.
type Transport struct {
	base      http.RoundTripper
	tokens    TokenStore
	refresher Refresher
	coalesce  bool
	group     singleflight.Group
	hooksMu   sync.RWMutex
	onExpired []ExpiredFunc
	logger    zerolog.Logger
}

var _ http.RoundTripper = (*Transport)(nil)

type TransportOption func(*Transport)

// WithBase sets the round tripper requests are sent through (default http.DefaultTransport)
func WithBase(rt http.RoundTripper) TransportOption {
	return func(t *Transport) {
		t.base = rt
	}
}

// WithCoalescedRefresh makes concurrent 401s wait on one shared refresh instead of each
// refreshing on their own
func WithCoalescedRefresh(enabled bool) TransportOption {
	return func(t *Transport) {
		t.coalesce = enabled
	}
}

// OnSessionExpired registers fn to run when the session is cleared after a failed refresh
func OnSessionExpired(fn ExpiredFunc) TransportOption {
	return func(t *Transport) {
		t.onExpired = append(t.onExpired, fn)
	}
}

func WithTransportLogger(l zerolog.Logger) TransportOption {
	return func(t *Transport) {
		t.logger = l
	}
}

func NewTransport(tokens TokenStore, refresher Refresher, opts ...TransportOption) *Transport {
	t := &Transport{
		base:      http.DefaultTransport,
		tokens:    tokens,
		refresher: refresher,
		coalesce:  true,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddExpiredHook registers fn after construction, for collaborators built later
func (t *Transport) AddExpiredHook(fn ExpiredFunc) {
	t.hooksMu.Lock()
	defer t.hooksMu.Unlock()
	t.onExpired = append(t.onExpired, fn)
}

type retriedKey struct{}

// MarkRetried flags ctx so requests made with it are never refreshed; a 401 is returned as is
func MarkRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey{}, true)
}

// IsRetried reports whether ctx was flagged by MarkRetried
func IsRetried(ctx context.Context) bool {
	v, _ := ctx.Value(retriedKey{}).(bool)
	return v
}

// pendingRequest is one logical call. It can be rebuilt for the resend and is marked once
// it has triggered a refresh.
type pendingRequest struct {
	orig      *http.Request
	getBody   func() (io.ReadCloser, error)
	requestID string
	retried   bool
	sentWith  string
}

func newPendingRequest(req *http.Request) (*pendingRequest, error) {
	p := &pendingRequest{
		orig:      req,
		getBody:   req.GetBody,
		requestID: req.Header.Get(HeaderRequestID),
		retried:   IsRetried(req.Context()),
	}
	if p.requestID == "" {
		p.requestID = uuid.NewString()
	}

	if req.Body == nil || req.Body == http.NoBody {
		return p, nil
	}
	if p.getBody == nil {
		data, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("buffer request body: %w", err)
		}
		p.getBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
		return p, nil
	}
	req.Body.Close()
	return p, nil
}

// build returns a fresh copy of the request carrying accessToken, if any
func (p *pendingRequest) build(accessToken string) (*http.Request, error) {
	r := p.orig.Clone(p.orig.Context())
	if p.getBody != nil {
		body, err := p.getBody()
		if err != nil {
			return nil, fmt.Errorf("rewind request body: %w", err)
		}
		r.Body = body
		r.GetBody = p.getBody
	}
	r.Header.Set(HeaderRequestID, p.requestID)
	if accessToken != "" {
		(&oauth2.Token{AccessToken: accessToken}).SetAuthHeader(r)
	}
	return r, nil
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	p, err := newPendingRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := t.send(p)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || p.retried {
		return resp, err
	}

	p.retried = true
	drain(resp)

	// Another request already refreshed while this one was in flight
	if current := t.tokens.AccessToken(); t.coalesce && current != "" && current != p.sentWith {
		return t.send(p)
	}

	ctx := req.Context()
	if err := t.refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		t.expire(err)
		return nil, fmt.Errorf("%w: %w", errors.ErrSessionExpired, err)
	}

	t.logger.Debug().Str("request_id", p.requestID).Str("path", req.URL.Path).Msg("Retrying request with refreshed token")
	return t.send(p)
}

func (t *Transport) send(p *pendingRequest) (*http.Response, error) {
	p.sentWith = t.tokens.AccessToken()
	r, err := p.build(p.sentWith)
	if err != nil {
		return nil, err
	}
	return t.base.RoundTrip(r)
}

// refresh obtains and persists a new token pair. When coalescing, callers holding the same
// refresh token share one call but each stops waiting when its own context ends.
func (t *Transport) refresh(ctx context.Context) error {
	refreshToken := t.tokens.RefreshToken()
	if refreshToken == "" {
		return errors.ErrNoRefreshToken
	}

	if !t.coalesce {
		return t.exchange(ctx, refreshToken)
	}

	ch := t.group.DoChan(refreshToken, func() (interface{}, error) {
		return nil, t.exchange(context.WithoutCancel(ctx), refreshToken)
	})
	select {
	case res := <-ch:
		if res.Shared {
			t.logger.Debug().Msg("Joined in-flight token refresh")
		}
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Transport) exchange(ctx context.Context, refreshToken string) error {
	pair, err := t.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	next := pair.RefreshToken
	if next == "" {
		next = refreshToken
	}
	if err := t.tokens.SetTokens(pair.AccessToken, next); err != nil {
		return fmt.Errorf("store refreshed tokens: %w", err)
	}
	return nil
}

func (t *Transport) expire(cause error) {
	t.logger.Warn().Err(cause).Msg("Token refresh failed, clearing session")
	if err := t.tokens.ClearAuth(); err != nil {
		t.logger.Err(err).Msg("Failed to clear session")
	}
	t.hooksMu.RLock()
	hooks := append([]ExpiredFunc(nil), t.onExpired...)
	t.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(cause)
	}
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}

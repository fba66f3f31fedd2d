package sessions

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TokenStore is the persistent session state the manager reads and clears
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(accessToken, refreshToken string) error
	User() (*users.User, bool)
	SetUser(u *users.User) error
	ClearAuth() error
}

// Identity fetches the current user and ends the session server side
type Identity interface {
	CurrentUser(ctx context.Context) (*users.User, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Manager is the process-wide holder of {user, authenticated, loading}.
// Init is run once at startup; Teardown stops any background work it started.
type Manager struct {
	tokens   TokenStore
	identity Identity
	logger   zerolog.Logger

	mu      sync.RWMutex
	state   State
	user    *users.User
	loading bool

	listenersMu sync.Mutex
	listeners   map[int]func(Snapshot)
	nextID      int

	initOnce sync.Once
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

type Option func(*Manager)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

func NewManager(tokens TokenStore, identity Identity, opts ...Option) *Manager {
	m := &Manager{
		tokens:    tokens,
		identity:  identity,
		logger:    log.Logger,
		state:     Initializing,
		loading:   true,
		listeners: make(map[int]func(Snapshot)),
		cancel:    func() {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init restores the session from the token store. With a stored access token and cached
// user the session is Authenticated straight away, and the canonical user is then fetched
// in the background. Without a token it is Unauthenticated and nothing is fetched.
// Only the first call has any effect.
func (m *Manager) Init(ctx context.Context) {
	m.initOnce.Do(func() {
		if m.tokens.AccessToken() == "" {
			m.update(func() {
				m.state = Unauthenticated
				m.user = nil
				m.loading = false
			})
			return
		}

		if cached, ok := m.tokens.User(); ok {
			m.update(func() {
				m.state = Authenticated
				m.user = cached
			})
		}

		fetchCtx, cancel := context.WithCancel(ctx)
		m.mu.Lock()
		m.cancel = cancel
		m.mu.Unlock()

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			defer cancel()
			m.loadUser(fetchCtx)
		}()
	})
}

func (m *Manager) loadUser(ctx context.Context) {
	u, err := m.identity.CurrentUser(ctx)
	if ctx.Err() != nil {
		// torn down or logged out while the fetch was in flight
		m.update(func() {
			m.loading = false
		})
		return
	}
	if err == nil {
		if err := m.tokens.SetUser(u); err != nil {
			m.logger.Err(err).Msg("Failed to cache user")
		}
		m.update(func() {
			m.state = Authenticated
			m.user = u
			m.loading = false
		})
		return
	}

	m.logger.Err(err).Msg("Failed to fetch user data")
	if isAuthFailure(err) {
		if err := m.tokens.ClearAuth(); err != nil {
			m.logger.Err(err).Msg("Failed to clear stale credentials")
		}
		m.update(func() {
			m.state = Unauthenticated
			m.user = nil
			m.loading = false
		})
		return
	}

	// Keep an optimistically restored session; otherwise boot as signed out
	m.update(func() {
		if m.state == Initializing {
			m.state = Unauthenticated
		}
		m.loading = false
	})
}

// Wait blocks until the background user fetch started by Init has finished
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Teardown cancels the background user fetch and waits for it to stop
func (m *Manager) Teardown() {
	m.stopFetch()
	m.wg.Wait()
}

func (m *Manager) stopFetch() {
	m.mu.RLock()
	cancel := m.cancel
	m.mu.RUnlock()
	cancel()
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		State:           m.state,
		User:            m.user,
		IsAuthenticated: m.state == Authenticated,
		Loading:         m.loading,
	}
}

// Subscribe calls fn after every state change until the returned func is called
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.listenersMu.Lock()
		defer m.listenersMu.Unlock()
		delete(m.listeners, id)
	}
}

// CompleteLogin stores the tokens delivered by the login callback and loads the user
func (m *Manager) CompleteLogin(ctx context.Context, accessToken, refreshToken string) (*users.User, error) {
	if accessToken == "" || refreshToken == "" {
		return nil, errors.ErrMissingCallbackTokens
	}
	if err := m.tokens.SetTokens(accessToken, refreshToken); err != nil {
		return nil, errors.Wrapf(err, "store tokens")
	}
	return m.RefreshUser(ctx)
}

// Logout ends the session. The server call is best effort; local state is always cleared.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.identity.Logout(ctx, m.tokens.RefreshToken()); err != nil {
		m.logger.Err(err).Msg("Logout error")
	}
	m.clear()
}

// RefreshUser re-fetches the current user. On failure the error is returned and the
// previous user is kept.
func (m *Manager) RefreshUser(ctx context.Context) (*users.User, error) {
	u, err := m.identity.CurrentUser(ctx)
	if err != nil {
		m.logger.Err(err).Msg("Failed to refresh user")
		return nil, err
	}
	if err := m.tokens.SetUser(u); err != nil {
		m.logger.Err(err).Msg("Failed to cache user")
	}
	m.update(func() {
		m.state = Authenticated
		m.user = u
		m.loading = false
	})
	return u, nil
}

// SetUser replaces the current user wholesale, e.g. after a profile update
func (m *Manager) SetUser(u *users.User) {
	if err := m.tokens.SetUser(u); err != nil {
		m.logger.Err(err).Msg("Failed to cache user")
	}
	m.update(func() {
		m.user = u
	})
}

// Expire is called when the request pipeline has given up on the session. The store has
// already been cleared by then; this only moves the in-memory state.
func (m *Manager) Expire(cause error) {
	m.logger.Info().Err(cause).Msg("Session expired")
	m.stopFetch()
	m.update(func() {
		m.state = Unauthenticated
		m.user = nil
		m.loading = false
	})
}

func (m *Manager) clear() {
	m.stopFetch()
	if err := m.tokens.ClearAuth(); err != nil {
		m.logger.Err(err).Msg("Failed to clear session")
	}
	m.update(func() {
		m.state = Unauthenticated
		m.user = nil
		m.loading = false
	})
}

// update applies fn under the lock and then notifies listeners outside it
func (m *Manager) update(fn func()) {
	m.mu.Lock()
	fn()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.listenersMu.Lock()
	listeners := make([]func(Snapshot), 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.listenersMu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func isAuthFailure(err error) bool {
	return errors.Is(err, errors.ErrUnauthorized) ||
		errors.Is(err, errors.ErrSessionExpired) ||
		errors.Is(err, errors.ErrNoRefreshToken)
}

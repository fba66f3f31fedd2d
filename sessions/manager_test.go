package sessions_test

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/sessions"
	"github.com/jrsteele09/go-finance-client/token"
	tokenfakerepo "github.com/jrsteele09/go-finance-client/token/repofake"
	"github.com/jrsteele09/go-finance-client/users"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeIdentity answers CurrentUser with user/err once release is closed (if set)
type fakeIdentity struct {
	user      *users.User
	err       error
	logoutErr error
	release   chan struct{}

	meCalls     atomic.Int32
	logoutCalls atomic.Int32
	mu          sync.Mutex
	logoutToken string
}

func (f *fakeIdentity) CurrentUser(ctx context.Context) (*users.User, error) {
	f.meCalls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	u := *f.user
	return &u, nil
}

func (f *fakeIdentity) Logout(ctx context.Context, refreshToken string) error {
	f.logoutCalls.Add(1)
	f.mu.Lock()
	f.logoutToken = refreshToken
	f.mu.Unlock()
	return f.logoutErr
}

func newStore(t *testing.T) *token.Store {
	t.Helper()
	return token.NewStore(tokenfakerepo.NewFakeTokenRepo())
}

func TestInit_RestoresCachedUserThenRefreshes(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetTokens("access", "refresh"))
	require.NoError(t, store.SetUser(&users.User{ID: "1", Name: "A"}))

	identity := &fakeIdentity{user: &users.User{ID: "1", Name: "Alice"}, release: make(chan struct{})}
	m := sessions.NewManager(store, identity)
	defer m.Teardown()

	m.Init(context.Background())
	snap := m.Snapshot()
	require.True(t, snap.IsAuthenticated)
	require.Equal(t, sessions.Authenticated, snap.State)
	require.Equal(t, "A", snap.User.Name)
	require.True(t, snap.Loading)

	close(identity.release)
	m.Wait()

	snap = m.Snapshot()
	require.True(t, snap.IsAuthenticated)
	require.Equal(t, "Alice", snap.User.Name)
	require.False(t, snap.Loading)

	cached, ok := store.User()
	require.True(t, ok)
	require.Equal(t, "Alice", cached.Name)
}

func TestInit_NoTokenSkipsFetch(t *testing.T) {
	identity := &fakeIdentity{user: &users.User{ID: "1"}}
	m := sessions.NewManager(newStore(t), identity)

	m.Init(context.Background())
	m.Wait()

	snap := m.Snapshot()
	require.False(t, snap.IsAuthenticated)
	require.False(t, snap.Loading)
	require.Nil(t, snap.User)
	require.Equal(t, sessions.Unauthenticated, snap.State)
	require.Zero(t, identity.meCalls.Load())
}

func TestInit_RunsOnce(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetTokens("access", "refresh"))
	identity := &fakeIdentity{user: &users.User{ID: "1"}}
	m := sessions.NewManager(store, identity)

	m.Init(context.Background())
	m.Init(context.Background())
	m.Wait()
	require.EqualValues(t, 1, identity.meCalls.Load())
}

func TestInit_UnauthorizedClearsCredentials(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetTokens("access", "refresh"))
	require.NoError(t, store.SetUser(&users.User{ID: "1", Name: "A"}))

	identity := &fakeIdentity{err: &errors.APIError{Status: http.StatusUnauthorized, Message: "invalid token"}}
	m := sessions.NewManager(store, identity)

	m.Init(context.Background())
	m.Wait()

	snap := m.Snapshot()
	require.False(t, snap.IsAuthenticated)
	require.Nil(t, snap.User)
	require.False(t, snap.Loading)
	require.Empty(t, store.AccessToken())
	require.Empty(t, store.RefreshToken())
}

func TestInit_OtherErrorsAreNotFatal(t *testing.T) {
	t.Run("without cached user", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.SetTokens("access", "refresh"))
		m := sessions.NewManager(store, &fakeIdentity{err: stderrors.New("network unreachable")})

		m.Init(context.Background())
		m.Wait()

		snap := m.Snapshot()
		require.Equal(t, sessions.Unauthenticated, snap.State)
		require.False(t, snap.Loading)
		require.Equal(t, "access", store.AccessToken())
	})

	t.Run("with cached user", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.SetTokens("access", "refresh"))
		require.NoError(t, store.SetUser(&users.User{ID: "1", Name: "A"}))
		m := sessions.NewManager(store, &fakeIdentity{err: &errors.APIError{Status: http.StatusBadGateway, Message: "bad gateway"}})

		m.Init(context.Background())
		m.Wait()

		snap := m.Snapshot()
		require.True(t, snap.IsAuthenticated)
		require.Equal(t, "A", snap.User.Name)
		require.False(t, snap.Loading)
	})
}

func TestLogout_ClearsEvenWhenRemoteFails(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetTokens("access", "refresh"))
	identity := &fakeIdentity{
		user:      &users.User{ID: "1", Name: "Alice"},
		logoutErr: stderrors.New("dial tcp: network is unreachable"),
	}
	m := sessions.NewManager(store, identity)
	m.Init(context.Background())
	m.Wait()
	require.True(t, m.Snapshot().IsAuthenticated)

	m.Logout(context.Background())

	snap := m.Snapshot()
	require.False(t, snap.IsAuthenticated)
	require.Nil(t, snap.User)
	require.Equal(t, "refresh", identity.logoutToken)
	require.Empty(t, store.AccessToken())
	require.Empty(t, store.RefreshToken())
	_, ok := store.User()
	require.False(t, ok)
}

func TestRefreshUser(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetTokens("access", "refresh"))
	identity := &fakeIdentity{user: &users.User{ID: "1", Name: "Alice"}}
	m := sessions.NewManager(store, identity)
	m.Init(context.Background())
	m.Wait()

	identity.user = &users.User{ID: "1", Name: "Alice Smith"}
	u, err := m.RefreshUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", u.Name)
	require.Equal(t, "Alice Smith", m.Snapshot().User.Name)

	identity.err = stderrors.New("boom")
	_, err = m.RefreshUser(context.Background())
	require.Error(t, err)
	require.Equal(t, "Alice Smith", m.Snapshot().User.Name)
}

func TestCompleteLogin(t *testing.T) {
	store := newStore(t)
	m := sessions.NewManager(store, &fakeIdentity{user: &users.User{ID: "7", Name: "Bob"}})
	m.Init(context.Background())

	_, err := m.CompleteLogin(context.Background(), "access", "")
	require.ErrorIs(t, err, errors.ErrMissingCallbackTokens)
	require.Empty(t, store.AccessToken())

	u, err := m.CompleteLogin(context.Background(), "access", "refresh")
	require.NoError(t, err)
	require.Equal(t, "Bob", u.Name)
	require.True(t, m.Snapshot().IsAuthenticated)
	require.Equal(t, "access", store.AccessToken())
	require.Equal(t, "refresh", store.RefreshToken())
}

func TestExpireAndSubscribe(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetTokens("access", "refresh"))
	m := sessions.NewManager(store, &fakeIdentity{user: &users.User{ID: "1"}})

	var mu sync.Mutex
	var states []sessions.State
	unsubscribe := m.Subscribe(func(s sessions.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s.State)
	})

	m.Init(context.Background())
	m.Wait()
	m.Expire(errors.ErrSessionExpired)
	unsubscribe()
	m.SetUser(&users.User{ID: "2"})

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []sessions.State{sessions.Authenticated, sessions.Unauthenticated}, states)
	require.False(t, m.Snapshot().IsAuthenticated)
}

func TestTeardownStopsBackgroundFetch(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetTokens("access", "refresh"))
	require.NoError(t, store.SetUser(&users.User{ID: "1", Name: "A"}))

	// release is never closed, so only cancellation ends the fetch
	m := sessions.NewManager(store, &fakeIdentity{release: make(chan struct{})})
	m.Init(context.Background())
	m.Teardown()

	snap := m.Snapshot()
	require.False(t, snap.Loading)
	require.Equal(t, "A", snap.User.Name)
	require.Equal(t, "access", store.AccessToken())
}

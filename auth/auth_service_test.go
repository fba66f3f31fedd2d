package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/auth"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/token"
	tokenfakerepo "github.com/jrsteele09/go-finance-client/token/repofake"
	"github.com/jrsteele09/go-finance-client/token/refresh"
	"github.com/jrsteele09/go-finance-client/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, h http.HandlerFunc) (*auth.Service, *token.Store, string) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	apiURL := srv.URL + "/api/v1"
	store := token.NewStore(tokenfakerepo.NewFakeTokenRepo())
	api := apiclient.New(apiURL, apiclient.NewTransport(store, refresh.NewClient(apiURL)))
	return auth.NewService(api), store, apiURL
}

func TestCurrentUser(t *testing.T) {
	svc, store, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"id":"1","name":"Alice","email":"alice@example.com","provider":"google"}}`))
	})
	require.NoError(t, store.SetTokens("access-1", "refresh-1"))

	u, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Alice", u.Name)
	require.Equal(t, users.ProviderGoogle, u.Provider)
}

func TestLogoutSendsRefreshToken(t *testing.T) {
	var got map[string]string
	svc, _, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/logout", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, svc.Logout(context.Background(), "refresh-1"))
	require.Equal(t, "refresh-1", got["refresh_token"])
}

func TestLoginURL(t *testing.T) {
	svc, _, apiURL := newService(t, func(w http.ResponseWriter, r *http.Request) {})

	u, err := svc.LoginURL(users.ProviderGithub, "")
	require.NoError(t, err)
	require.Equal(t, apiURL+"/auth/github", u)

	u, err = svc.LoginURL(users.ProviderGoogle, "http://127.0.0.1:8765/auth/callback")
	require.NoError(t, err)
	require.Equal(t, apiURL+"/auth/google?redirect_uri=http%3A%2F%2F127.0.0.1%3A8765%2Fauth%2Fcallback", u)

	_, err = svc.LoginURL("myspace", "")
	require.ErrorIs(t, err, errors.ErrUnsupportedAuthProvider)
}

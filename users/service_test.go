package users_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/internal/utils"
	"github.com/jrsteele09/go-finance-client/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	got []*users.User
}

func (s *recordingSink) SetUser(u *users.User) {
	s.got = append(s.got, u)
}

func newService(t *testing.T, sink users.Sink, h http.HandlerFunc) *users.Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return users.NewService(apiclient.New(srv.URL, http.DefaultTransport), sink)
}

func TestUpdateProfileReplacesCachedUser(t *testing.T) {
	sink := &recordingSink{}
	svc := newService(t, sink, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/user/profile", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"currency": "EUR"}, body)
		w.Write([]byte(`{"data":{"id":"1","name":"Alice","email":"alice@example.com","currency":"EUR"}}`))
	})

	u, err := svc.UpdateProfile(context.Background(), users.ProfileUpdate{Currency: utils.Ptr("EUR")})
	require.NoError(t, err)

	want := &users.User{ID: "1", Name: "Alice", Email: "alice@example.com", Currency: "EUR"}
	if diff := cmp.Diff(want, u); diff != "" {
		t.Errorf("UpdateProfile() mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, sink.got, 1)
	if diff := cmp.Diff(want, sink.got[0]); diff != "" {
		t.Errorf("sink user mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateProfileFailureLeavesSinkAlone(t *testing.T) {
	sink := &recordingSink{}
	svc := newService(t, sink, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid email"}}`))
	})

	_, err := svc.UpdateProfile(context.Background(), users.ProfileUpdate{Email: utils.Ptr("nope")})
	require.Error(t, err)
	require.Empty(t, sink.got)
}

func TestAvatar(t *testing.T) {
	svc := newService(t, nil, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			f, hdr, err := r.FormFile("avatar")
			if !assert.NoError(t, err) {
				return
			}
			defer f.Close()
			data, _ := io.ReadAll(f)
			assert.Equal(t, "me.jpg", hdr.Filename)
			assert.Equal(t, "jpeg", string(data))
			w.Write([]byte(`{"data":{"avatar_url":"https://cdn.example.com/a/1.jpg"}}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	url, err := svc.UploadAvatar(context.Background(), "me.jpg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/a/1.jpg", url)
	require.NoError(t, svc.DeleteAvatar(context.Background()))
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "Alice", (&users.User{Name: "Alice", Email: "a@example.com"}).DisplayName())
	require.Equal(t, "a@example.com", (&users.User{Email: "a@example.com"}).DisplayName())
	var u *users.User
	require.Empty(t, u.DisplayName())
}

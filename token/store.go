package token

import (
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Storage keys, fixed so a session written by one run is found by the next
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// Store keeps the access token, refresh token and last known user.
// Getters never fail: a missing or unreadable entry is reported as absent.
type Store struct {
	repo   Repo
	logger zerolog.Logger
}

type StoreOption func(*Store)

func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

func NewStore(repo Repo, opts ...StoreOption) *Store {
	s := &Store{repo: repo, logger: log.Logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) SetAccessToken(token string) error {
	return s.repo.Put(KeyAccessToken, token)
}

func (s *Store) AccessToken() string {
	return s.get(KeyAccessToken)
}

func (s *Store) SetRefreshToken(token string) error {
	return s.repo.Put(KeyRefreshToken, token)
}

func (s *Store) RefreshToken() string {
	return s.get(KeyRefreshToken)
}

// SetTokens writes both tokens together so the store never holds only one of them
func (s *Store) SetTokens(accessToken, refreshToken string) error {
	if accessToken == "" || refreshToken == "" {
		return fmt.Errorf("set tokens: %w", errors.ErrIncompleteTokenPair)
	}
	return s.repo.PutAll(map[string]string{
		KeyAccessToken:  accessToken,
		KeyRefreshToken: refreshToken,
	})
}

func (s *Store) SetUser(u *users.User) error {
	if u == nil {
		return s.deleteKey(KeyUser)
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo.Put(KeyUser, string(data))
}

// User returns the cached user, or false when none is stored or it cannot be decoded
func (s *Store) User() (*users.User, bool) {
	raw := s.get(KeyUser)
	if raw == "" {
		return nil, false
	}
	var u users.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn().Err(err).Msg("Discarding unreadable cached user")
		return nil, false
	}
	return &u, true
}

// ClearAuth removes both tokens and the cached user. Each key is deleted even if an earlier
// delete failed; the failures are returned joined.
func (s *Store) ClearAuth() error {
	var errs []error
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		if err := s.deleteKey(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// Token returns the stored pair as an oauth2 token, with Expiry taken from the access
// token's exp claim when it is a JWT. It returns nil when no access token is stored.
func (s *Store) Token() *oauth2.Token {
	access := s.AccessToken()
	if access == "" {
		return nil
	}
	tok := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: s.RefreshToken(),
		TokenType:    "Bearer",
	}
	if claims, err := InspectAccessToken(access); err == nil {
		tok.Expiry = claims.ExpiresAt
	}
	return tok
}

// TokenSource exposes the stored access token to oauth2-aware HTTP clients
func (s *Store) TokenSource() oauth2.TokenSource {
	return storeTokenSource{store: s}
}

type storeTokenSource struct {
	store *Store
}

func (ts storeTokenSource) Token() (*oauth2.Token, error) {
	tok := ts.store.Token()
	if tok == nil {
		return nil, errors.ErrNotAuthenticated
	}
	return tok, nil
}

func (s *Store) get(key string) string {
	value, err := s.repo.Get(key)
	if err != nil {
		if !errors.Is(err, errors.ErrKeyNotFound) {
			s.logger.Err(err).Str("key", key).Msg("Failed to read token store")
		}
		return ""
	}
	return value
}

func (s *Store) deleteKey(key string) error {
	if err := s.repo.Delete(key); err != nil && !errors.Is(err, errors.ErrKeyNotFound) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

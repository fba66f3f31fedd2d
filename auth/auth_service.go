package auth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/users"
	"github.com/rs/zerolog/log"
)

const (
	RouteMe     = "/auth/me"
	RouteLogout = "/auth/logout"
	// RouteProviderLogin is followed by the provider name, e.g. /auth/google
	RouteProviderLogin = "/auth/"
)

// Service talks to the identity endpoints of the API
type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// CurrentUser fetches the canonical record of the signed-in user
func (s *Service) CurrentUser(ctx context.Context) (*users.User, error) {
	var u users.User
	if err := s.api.Get(ctx, RouteMe, nil, &u); err != nil {
		log.Err(err).Msg("Failed to get current user")
		return nil, err
	}
	return &u, nil
}

// Logout revokes the refresh token server side
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	body := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}
	return s.api.Post(ctx, RouteLogout, body, nil)
}

// LoginURL is where the user starts an OAuth login with provider. The identity service
// redirects back to redirectURI with access_token and refresh_token query parameters.
func (s *Service) LoginURL(provider users.Provider, redirectURI string) (string, error) {
	switch provider {
	case users.ProviderGoogle, users.ProviderGithub:
	default:
		return "", fmt.Errorf("%w: %q", errors.ErrUnsupportedAuthProvider, provider)
	}

	u := s.api.APIURL() + RouteProviderLogin + string(provider)
	if redirectURI != "" {
		u += "?" + url.Values{"redirect_uri": {redirectURI}}.Encode()
	}
	return u, nil
}

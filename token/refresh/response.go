package refresh

// TokenPair is the payload of a successful refresh.
// RefreshToken is only present when the server rotates it.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// refreshRequest is the body of POST /auth/refresh
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refreshResponse is the envelope returned by POST /auth/refresh
type refreshResponse struct {
	Data *TokenPair `json:"data"`
}

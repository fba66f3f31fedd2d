package users

import (
	"time"
)

// Provider is the OAuth provider the user signed in with
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGithub Provider = "github"
)

// User is the identity record returned by the API. The client never edits it in place;
// profile and avatar calls return a new record that replaces the cached one.
type User struct {
	ID        string    `json:"id"`                   // Unique identifier for the user
	Name      string    `json:"name,omitempty"`       // Display name
	Email     string    `json:"email,omitempty"`      // User's email address
	AvatarURL string    `json:"avatar_url,omitempty"` // Link to the uploaded or provider avatar
	Provider  Provider  `json:"provider,omitempty"`   // OAuth provider used to sign in
	Currency  string    `json:"currency,omitempty"`   // Preferred display currency (ISO 4217)
	CreatedAt time.Time `json:"created_at,omitempty"` // When the account was created
}

// DisplayName returns Name, falling back to Email
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// ProfileUpdate carries the editable profile fields; nil fields are left unchanged
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

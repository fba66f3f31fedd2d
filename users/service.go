package users

import (
	"context"
	"io"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	routeProfile = "/user/profile"
	routeAvatar  = "/user/avatar"
)

// Sink receives the replacement user record after a profile change
type Sink interface {
	SetUser(u *User)
}

// Service manages the signed-in user's profile and avatar
type Service struct {
	api    *apiclient.Client
	sink   Sink
	logger zerolog.Logger
}

// NewService creates a profile service. sink may be nil.
func NewService(api *apiclient.Client, sink Sink) *Service {
	return &Service{api: api, sink: sink, logger: log.Logger}
}

func (s *Service) GetProfile(ctx context.Context) (*User, error) {
	var u User
	if err := s.api.Get(ctx, routeProfile, nil, &u); err != nil {
		s.logger.Err(err).Msg("Failed to get user profile")
		return nil, err
	}
	return &u, nil
}

// UpdateProfile saves the changes and replaces the cached user with the server's copy
func (s *Service) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var u User
	if err := s.api.Put(ctx, routeProfile, update, &u); err != nil {
		s.logger.Err(err).Msg("Failed to update profile")
		return nil, err
	}
	if s.sink != nil {
		s.sink.SetUser(&u)
	}
	return &u, nil
}

// UploadAvatar sends the image as multipart field "avatar" and returns its URL
func (s *Service) UploadAvatar(ctx context.Context, filename string, content io.Reader) (string, error) {
	var resp struct {
		AvatarURL string `json:"avatar_url"`
	}
	err := s.api.Upload(ctx, routeAvatar, apiclient.FilePart{
		Field:    "avatar",
		Filename: filename,
		Content:  content,
	}, &resp)
	if err != nil {
		s.logger.Err(err).Msg("Failed to upload avatar")
		return "", err
	}
	return resp.AvatarURL, nil
}

func (s *Service) DeleteAvatar(ctx context.Context) error {
	if err := s.api.Delete(ctx, routeAvatar, nil); err != nil {
		s.logger.Err(err).Msg("Failed to delete avatar")
		return err
	}
	return nil
}

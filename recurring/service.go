package recurring

import (
	"context"
	"net/url"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const route = "/recurring"

type Service struct {
	api    *apiclient.Client
	logger zerolog.Logger
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, logger: log.Logger}
}

func (s *Service) List(ctx context.Context, status Status) ([]Rule, error) {
	var out []Rule
	q := apiclient.NewQuery().String("status", string(status))
	if err := s.api.Get(ctx, route, q.Values(), &out); err != nil {
		s.logger.Err(err).Msg("Failed to list recurring transactions")
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Rule, error) {
	var r Rule
	if err := s.api.Get(ctx, route+"/"+url.PathEscape(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) Create(ctx context.Context, nr NewRule) (*Rule, error) {
	if !nr.Frequency.Valid() {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "unknown frequency %q", nr.Frequency)
	}
	if !nr.Type.Valid() {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "recurring type must be income or expense, got %q", nr.Type)
	}
	var r Rule
	if err := s.api.Post(ctx, route, nr, &r); err != nil {
		s.logger.Err(err).Msg("Failed to create recurring transaction")
		return nil, err
	}
	return &r, nil
}

func (s *Service) Update(ctx context.Context, id string, u Update) (*Rule, error) {
	if u.Frequency != nil && !u.Frequency.Valid() {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "unknown frequency %q", *u.Frequency)
	}
	var r Rule
	if err := s.api.Put(ctx, route+"/"+url.PathEscape(id), u, &r); err != nil {
		s.logger.Err(err).Msg("Failed to update recurring transaction")
		return nil, err
	}
	return &r, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, route+"/"+url.PathEscape(id), nil)
}

// Toggle flips a rule between active and paused and returns the updated rule
func (s *Service) Toggle(ctx context.Context, id string) (*Rule, error) {
	var r Rule
	if err := s.api.Patch(ctx, route+"/"+url.PathEscape(id)+"/toggle", nil, &r); err != nil {
		s.logger.Err(err).Msg("Failed to toggle recurring transaction")
		return nil, err
	}
	return &r, nil
}

// Upcoming lists occurrences due in the next days days (server default when days <= 0)
func (s *Service) Upcoming(ctx context.Context, days int) ([]Occurrence, error) {
	var out []Occurrence
	q := apiclient.NewQuery().PositiveInt("days", days)
	if err := s.api.Get(ctx, route+"/upcoming", q.Values(), &out); err != nil {
		s.logger.Err(err).Msg("Failed to get upcoming recurring transactions")
		return nil, err
	}
	return out, nil
}

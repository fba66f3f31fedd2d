package budgets

import (
	"context"
	"net/url"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const route = "/budgets"

type Service struct {
	api    *apiclient.Client
	logger zerolog.Logger
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, logger: log.Logger}
}

func periodQuery(p Period) url.Values {
	return apiclient.NewQuery().PositiveInt("month", p.Month).PositiveInt("year", p.Year).Values()
}

func (s *Service) List(ctx context.Context, p Period) ([]Budget, error) {
	var out []Budget
	if err := s.api.Get(ctx, route, periodQuery(p), &out); err != nil {
		s.logger.Err(err).Msg("Failed to list budgets")
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Budget, error) {
	var b Budget
	if err := s.api.Get(ctx, route+"/"+url.PathEscape(id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Service) Create(ctx context.Context, nb NewBudget) (*Budget, error) {
	if nb.CategoryID == "" || nb.Amount <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "budget needs a category and a positive amount")
	}
	if nb.Month < 1 || nb.Month > 12 {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "month %d out of range", nb.Month)
	}
	var b Budget
	if err := s.api.Post(ctx, route, nb, &b); err != nil {
		s.logger.Err(err).Msg("Failed to create budget")
		return nil, err
	}
	return &b, nil
}

func (s *Service) Update(ctx context.Context, id string, u Update) (*Budget, error) {
	var b Budget
	if err := s.api.Put(ctx, route+"/"+url.PathEscape(id), u, &b); err != nil {
		s.logger.Err(err).Msg("Failed to update budget")
		return nil, err
	}
	return &b, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, route+"/"+url.PathEscape(id), nil)
}

func (s *Service) Progress(ctx context.Context, p Period) ([]Progress, error) {
	var out []Progress
	if err := s.api.Get(ctx, route+"/progress", periodQuery(p), &out); err != nil {
		s.logger.Err(err).Msg("Failed to get budget progress")
		return nil, err
	}
	return out, nil
}

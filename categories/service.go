package categories

import (
	"context"
	"net/url"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/transactions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const route = "/categories"

type Service struct {
	api    *apiclient.Client
	logger zerolog.Logger
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, logger: log.Logger}
}

// List returns the categories of the given type, or all of them when kind is empty
func (s *Service) List(ctx context.Context, kind transactions.Kind) ([]Category, error) {
	var out []Category
	q := apiclient.NewQuery().String("type", string(kind))
	if err := s.api.Get(ctx, route, q.Values(), &out); err != nil {
		s.logger.Err(err).Msg("Failed to list categories")
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	var c Category
	if err := s.api.Get(ctx, route+"/"+url.PathEscape(id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Create(ctx context.Context, nc NewCategory) (*Category, error) {
	if nc.Name == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "category name is required")
	}
	if !nc.Type.Valid() {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "category type must be income or expense, got %q", nc.Type)
	}
	var c Category
	if err := s.api.Post(ctx, route, nc, &c); err != nil {
		s.logger.Err(err).Msg("Failed to create category")
		return nil, err
	}
	return &c, nil
}

func (s *Service) Update(ctx context.Context, id string, u Update) (*Category, error) {
	var c Category
	if err := s.api.Put(ctx, route+"/"+url.PathEscape(id), u, &c); err != nil {
		s.logger.Err(err).Msg("Failed to update category")
		return nil, err
	}
	return &c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, route+"/"+url.PathEscape(id), nil)
}

func (s *Service) WithCounts(ctx context.Context, kind transactions.Kind) ([]WithCount, error) {
	var out []WithCount
	q := apiclient.NewQuery().String("type", string(kind))
	if err := s.api.Get(ctx, route+"/with-counts", q.Values(), &out); err != nil {
		s.logger.Err(err).Msg("Failed to get categories with counts")
		return nil, err
	}
	return out, nil
}

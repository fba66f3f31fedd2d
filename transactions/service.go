package transactions

import (
	"context"
	"net/url"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"
)

const route = "/transactions"

type Service struct {
	api    *apiclient.Client
	logger zerolog.Logger
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, logger: log.Logger}
}

func (s *Service) List(ctx context.Context, f Filter) (*Page, error) {
	q := apiclient.NewQuery().
		PositiveInt("page", f.Page).
		PositiveInt("limit", f.Limit).
		String("type", string(f.Type)).
		String("category_id", f.CategoryID).
		String("start_date", f.StartDate).
		String("end_date", f.EndDate).
		String("search", f.Search).
		String("sort_by", f.SortBy).
		String("sort_order", string(f.SortOrder))

	var page Page
	if err := s.api.Get(ctx, route, q.Values(), &page); err != nil {
		s.logger.Err(err).Msg("Failed to list transactions")
		return nil, err
	}
	return &page, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Transaction, error) {
	if id == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "transaction id is required")
	}
	var t Transaction
	if err := s.api.Get(ctx, route+"/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) Create(ctx context.Context, nt NewTransaction) (*Transaction, error) {
	if !nt.Type.Valid() {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "transaction type must be income or expense, got %q", nt.Type)
	}
	// Composed form so server-side search matches however the text was typed
	nt.Description = norm.NFC.String(nt.Description)
	nt.Notes = norm.NFC.String(nt.Notes)

	var t Transaction
	if err := s.api.Post(ctx, route, nt, &t); err != nil {
		s.logger.Err(err).Msg("Failed to create transaction")
		return nil, err
	}
	return &t, nil
}

func (s *Service) Update(ctx context.Context, id string, u Update) (*Transaction, error) {
	var t Transaction
	if err := s.api.Put(ctx, route+"/"+url.PathEscape(id), u, &t); err != nil {
		s.logger.Err(err).Msg("Failed to update transaction")
		return nil, err
	}
	return &t, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, route+"/"+url.PathEscape(id), nil)
}

// Recent returns the latest transactions; limit <= 0 leaves the count to the server
func (s *Service) Recent(ctx context.Context, limit int) ([]Transaction, error) {
	var out []Transaction
	q := apiclient.NewQuery().PositiveInt("limit", limit)
	if err := s.api.Get(ctx, route+"/recent", q.Values(), &out); err != nil {
		s.logger.Err(err).Msg("Failed to get recent transactions")
		return nil, err
	}
	return out, nil
}

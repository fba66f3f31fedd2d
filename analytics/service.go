package analytics

import (
	"context"
	"net/url"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const route = "/analytics"

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

func (s *Service) Dashboard(ctx context.Context, p Period) (*Dashboard, error) {
	var d Dashboard
	if err := s.api.Get(ctx, route+"/dashboard", periodQuery(p), &d); err != nil {
		s.logger.Err(err).Msg("Failed to get dashboard")
		return nil, err
	}
	return &d, nil
}

func (s *Service) ExpensesByCategory(ctx context.Context, p Period) ([]Segment, error) {
	var out []Segment
	if err := s.api.Get(ctx, route+"/expenses-by-category", periodQuery(p), &out); err != nil {
		s.logger.Err(err).Msg("Failed to get expenses by category")
		return nil, err
	}
	return out, nil
}

// ExpensesOverTime returns monthly totals for the last months months (server default when <= 0)
func (s *Service) ExpensesOverTime(ctx context.Context, months int) ([]MonthTotal, error) {
	var out []MonthTotal
	q := apiclient.NewQuery().PositiveInt("months", months)
	if err := s.api.Get(ctx, route+"/expenses-over-time", q.Values(), &out); err != nil {
		s.logger.Err(err).Msg("Failed to get expenses over time")
		return nil, err
	}
	return out, nil
}

func (s *Service) IncomeVsExpenses(ctx context.Context, p Period) (*IncomeVsExpenses, error) {
	var out IncomeVsExpenses
	if err := s.api.Get(ctx, route+"/income-vs-expenses", periodQuery(p), &out); err != nil {
		s.logger.Err(err).Msg("Failed to get income vs expenses")
		return nil, err
	}
	return &out, nil
}

// Overview fetches the four analytics views concurrently. The first failure cancels the
// rest and is returned.
func (s *Service) Overview(ctx context.Context, p Period, months int) (*Overview, error) {
	var o Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		o.Dashboard, err = s.Dashboard(gctx, p)
		return err
	})
	g.Go(func() (err error) {
		o.ExpensesByCategory, err = s.ExpensesByCategory(gctx, p)
		return err
	})
	g.Go(func() (err error) {
		o.ExpensesOverTime, err = s.ExpensesOverTime(gctx, months)
		return err
	})
	g.Go(func() (err error) {
		o.IncomeVsExpenses, err = s.IncomeVsExpenses(gctx, p)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &o, nil
}

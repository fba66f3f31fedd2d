package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jrsteele09/go-finance-client/analytics"
	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/auth"
	"github.com/jrsteele09/go-finance-client/budgets"
	"github.com/jrsteele09/go-finance-client/categories"
	"github.com/jrsteele09/go-finance-client/exports"
	"github.com/jrsteele09/go-finance-client/internal/config"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/internal/seal"
	"github.com/jrsteele09/go-finance-client/receipts"
	"github.com/jrsteele09/go-finance-client/recurring"
	"github.com/jrsteele09/go-finance-client/sessions"
	"github.com/jrsteele09/go-finance-client/token"
	"github.com/jrsteele09/go-finance-client/token/boltrepo"
	"github.com/jrsteele09/go-finance-client/token/refresh"
	"github.com/jrsteele09/go-finance-client/transactions"
	"github.com/jrsteele09/go-finance-client/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.etcd.io/bbolt"
)

// Navigator is told where to send the user when the session can no longer be used
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a plain func to Navigator
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

// App wires the token store, request pipeline, session and API services together
type App struct {
	Config    config.Config
	Tokens    *token.Store
	Transport *apiclient.Transport
	API       *apiclient.Client
	Auth      *auth.Service
	Session   *sessions.Manager

	Users        *users.Service
	Transactions *transactions.Service
	Categories   *categories.Service
	Budgets      *budgets.Service
	Recurring    *recurring.Service
	Receipts     *receipts.Service
	Analytics    *analytics.Service
	Exports      *exports.Service

	repo   token.Repo
	logger zerolog.Logger
}

type Option func(*options)

type options struct {
	repo      token.Repo
	navigator Navigator
	logger    zerolog.Logger
}

// WithRepo replaces the bbolt token file with repo
func WithRepo(repo token.Repo) Option {
	return func(o *options) {
		o.repo = repo
	}
}

func WithNavigator(n Navigator) Option {
	return func(o *options) {
		o.navigator = n
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New builds the application. The session is not restored until Start is called.
func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{logger: log.Logger}
	for _, opt := range opts {
		opt(&o)
	}

	repo := o.repo
	if repo == nil {
		var err error
		if repo, err = openTokenRepo(cfg); err != nil {
			return nil, err
		}
	}

	a := &App{Config: cfg, repo: repo, logger: o.logger}
	a.Tokens = token.NewStore(repo, token.WithLogger(o.logger))
	wire := apiclient.NewLoggingTransport(http.DefaultTransport, cfg.GetEnv() == "DEV").WithLogger(o.logger)
	a.Transport = apiclient.NewTransport(a.Tokens, refresh.NewClient(cfg.GetAPIURL()),
		apiclient.WithBase(wire),
		apiclient.WithCoalescedRefresh(cfg.GetRefreshSingleFlight()),
		apiclient.WithTransportLogger(o.logger),
	)
	a.API = apiclient.New(cfg.GetAPIURL(), a.Transport,
		apiclient.WithTimeout(cfg.GetAPITimeout()),
		apiclient.WithLogger(o.logger),
	)
	a.Auth = auth.NewService(a.API)
	a.Session = sessions.NewManager(a.Tokens, a.Auth, sessions.WithLogger(o.logger))

	a.Transport.AddExpiredHook(a.Session.Expire)
	if o.navigator != nil {
		loginRoute := cfg.GetLoginRoute()
		a.Transport.AddExpiredHook(func(error) {
			o.navigator.Navigate(loginRoute)
		})
	}

	a.Users = users.NewService(a.API, a.Session)
	a.Transactions = transactions.NewService(a.API)
	a.Categories = categories.NewService(a.API)
	a.Budgets = budgets.NewService(a.API)
	a.Recurring = recurring.NewService(a.API)
	a.Receipts = receipts.NewService(a.API)
	a.Analytics = analytics.NewService(a.API)
	a.Exports = exports.NewService(a.API)
	return a, nil
}

// Start restores the stored session and begins loading the user in the background
func (a *App) Start(ctx context.Context) {
	a.Session.Init(ctx)
}

// RequireSession waits for session restore and fails with ErrNotAuthenticated when
// nobody is signed in
func (a *App) RequireSession(ctx context.Context) (sessions.Snapshot, error) {
	a.Start(ctx)
	a.Session.Wait()
	snap := a.Session.Snapshot()
	if !snap.IsAuthenticated && a.Tokens.AccessToken() == "" {
		return snap, errors.ErrNotAuthenticated
	}
	return snap, nil
}

// Close stops background session work and releases the token store
func (a *App) Close() error {
	a.Session.Teardown()
	if c, ok := a.repo.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func openTokenRepo(cfg config.Config) (*boltrepo.Repo, error) {
	path := cfg.GetTokenStorePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data folder: %w", err)
	}

	var repoOpts []boltrepo.Option
	if key := cfg.GetTokenStoreKey(); key != "" {
		sealer, err := seal.New(key)
		if err != nil {
			return nil, fmt.Errorf("token store key: %w", err)
		}
		repoOpts = append(repoOpts, boltrepo.WithSealer(sealer))
	}

	// A second CLI process holding the file fails fast instead of hanging
	return boltrepo.NewFromFile(path, &bbolt.Options{Timeout: time.Second}, repoOpts...)
}

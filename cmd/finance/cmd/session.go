package cmd

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-finance-client/app"
	"github.com/jrsteele09/go-finance-client/internal/config"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNotSignedIn = errors.New("not signed in: run `finance login`")

func openApp(cmd *cobra.Command) (*app.App, error) {
	return app.New(config.New(),
		app.WithLogger(log.Logger),
		app.WithNavigator(app.NavigatorFunc(func(route string) {
			fmt.Fprintln(cmd.ErrOrStderr(), "session expired: run `finance login`")
			log.Debug().Str("route", route).Msg("Session expired")
		})),
	)
}

// withApp opens the app for the duration of fn
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Err(err).Msg("Failed to close token store")
		}
	}()
	return fn(cmd.Context(), a)
}

// withSession is withApp for commands that need a signed-in user
func withSession(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if _, err := a.RequireSession(ctx); err != nil {
			if errors.Is(err, errors.ErrNotAuthenticated) {
				return errNotSignedIn
			}
			return err
		}
		return fn(ctx, a)
	})
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-finance-client/app"
	"github.com/jrsteele09/go-finance-client/auth"
	"github.com/jrsteele09/go-finance-client/users"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	loginProvider string
	loginTimeout  time.Duration
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google or GitHub",
	Long: `Starts a loopback listener, prints the provider sign-in URL and waits for the
browser to be redirected back with the session tokens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			callback, err := auth.NewCallbackServer(a.Config.GetCallbackAddr())
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := callback.Shutdown(shutdownCtx); err != nil {
					log.Err(err).Msg("Failed to stop login callback listener")
				}
			}()

			loginURL, err := a.Auth.LoginURL(users.Provider(loginProvider), callback.RedirectURI())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Open this URL in your browser to sign in:\n\n  %s\n\n", loginURL)

			waitCtx, cancel := context.WithTimeout(ctx, loginTimeout)
			defer cancel()
			result, err := callback.Wait(waitCtx)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			u, err := a.Session.CompleteLogin(ctx, result.AccessToken, result.RefreshToken)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", u.DisplayName())
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			a.Session.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			u := a.Session.Snapshot().User
			if u == nil {
				// restored without a cached user and the background fetch failed
				var err error
				if u, err = a.Session.RefreshUser(ctx); err != nil {
					return err
				}
			}
			return render(cmd, u, func() table {
				t := table{header: []string{"ID", "NAME", "EMAIL", "PROVIDER", "CURRENCY"}}
				t.add(u.ID, orDash(u.Name), orDash(u.Email), orDash(string(u.Provider)), orDash(u.Currency))
				return t
			})
		})
	},
}

// statusReport is what `finance status` prints; it never calls the API
type statusReport struct {
	SignedIn   bool       `json:"signed_in"`
	User       string     `json:"user,omitempty"`
	API        string     `json:"api"`
	TokenStore string     `json:"token_store"`
	Expires    *time.Time `json:"access_token_expires,omitempty"`
	Expired    bool       `json:"access_token_expired"`
	Refresh    bool       `json:"refresh_token_stored"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session without contacting the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			report := statusReport{
				SignedIn:   a.Tokens.IsAuthenticated(),
				API:        a.Config.GetAPIURL(),
				TokenStore: a.Config.GetTokenStorePath(),
				Refresh:    a.Tokens.RefreshToken() != "",
			}
			if u, ok := a.Tokens.User(); ok {
				report.User = u.DisplayName()
			}
			if tok := a.Tokens.Token(); tok != nil && !tok.Expiry.IsZero() {
				report.Expires = &tok.Expiry
				report.Expired = !tok.Valid()
			}

			return render(cmd, report, func() table {
				expires := "-"
				if report.Expires != nil {
					expires = report.Expires.Local().Format(time.RFC1123)
					if report.Expired {
						expires += " (expired, will refresh on next request)"
					}
				}
				t := table{header: []string{"SIGNED IN", "USER", "ACCESS TOKEN EXPIRES", "API"}}
				t.add(fmt.Sprint(report.SignedIn), orDash(report.User), expires, report.API)
				return t
			})
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginProvider, "provider", string(users.ProviderGoogle), "identity provider: google or github")
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute, "how long to wait for the browser to complete sign-in")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, statusCmd)
}

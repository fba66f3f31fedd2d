package auth

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/rs/zerolog/log"
)

// RouteCallback is the path the identity service redirects back to after login
const RouteCallback = "/auth/callback"

// CallbackResult holds the tokens delivered by a successful login redirect
type CallbackResult struct {
	AccessToken  string
	RefreshToken string
}

// ParseCallback extracts the tokens from the login redirect query.
// Both tokens are required; an error parameter from the server wins over everything else.
func ParseCallback(query url.Values) (*CallbackResult, error) {
	if reason := query.Get("error"); reason != "" {
		return nil, &CallbackError{Reason: reason}
	}

	result := &CallbackResult{
		AccessToken:  query.Get("access_token"),
		RefreshToken: query.Get("refresh_token"),
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		return nil, errors.ErrMissingCallbackTokens
	}
	return result, nil
}

type callbackOutcome struct {
	result *CallbackResult
	err    error
}

// CallbackServer receives the login redirect on a loopback address
type CallbackServer struct {
	listener net.Listener
	server   *http.Server
	outcome  chan callbackOutcome
	once     sync.Once
}

// NewCallbackServer starts listening on addr (e.g. 127.0.0.1:8765; port 0 picks one)
func NewCallbackServer(addr string) (*CallbackServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen for login callback: %w", err)
	}

	c := &CallbackServer{
		listener: ln,
		outcome:  make(chan callbackOutcome, 1),
	}
	c.server = &http.Server{
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := c.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Err(err).Msg("Login callback server stopped")
		}
	}()
	return c, nil
}

// RedirectURI is the URL to hand to the identity service
func (c *CallbackServer) RedirectURI() string {
	return "http://" + c.listener.Addr().String() + RouteCallback
}

// Handler routes the callback path; other paths are 404
func (c *CallbackServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(RouteCallback, c.handleCallback)
	return r
}

func (c *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	result, err := ParseCallback(r.URL.Query())

	c.once.Do(func() {
		c.outcome <- callbackOutcome{result: result, err: err}
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		callbackPage.Execute(w, callbackView{Title: "Authentication Failed", Message: err.Error()})
		return
	}
	callbackPage.Execute(w, callbackView{Title: "Signed in", Message: "You can close this window and return to the terminal."})
}

// Wait blocks until the first callback arrives or ctx ends
func (c *CallbackServer) Wait(ctx context.Context) (*CallbackResult, error) {
	select {
	case o := <-c.outcome:
		return o.result, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *CallbackServer) Shutdown(ctx context.Context) error {
	return c.server.Shutdown(ctx)
}

type callbackView struct {
	Title   string
	Message string
}

var callbackPage = template.Must(template.New("callback").Parse(`<!doctype html>
<html><head><title>{{.Title}}</title></head>
<body><h2>{{.Title}}</h2><p>{{.Message}}</p></body></html>
`))

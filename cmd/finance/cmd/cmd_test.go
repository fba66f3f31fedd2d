package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-finance-client/app"
	"github.com/jrsteele09/go-finance-client/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func setOutputFormat(t *testing.T, format string) {
	t.Helper()
	prev := outputFormat
	outputFormat = format
	t.Cleanup(func() { outputFormat = prev })
}

func TestRender(t *testing.T) {
	v := []map[string]any{{"id": "c1", "name": "Food"}}
	build := func() table {
		tbl := table{header: []string{"ID", "NAME"}}
		tbl.add("c1", "Food")
		return tbl
	}

	tests := []struct {
		format string
		want   string
	}{
		{outputTable, "ID  NAME\nc1  Food\n"},
		{outputJSON, "[\n  {\n    \"id\": \"c1\",\n    \"name\": \"Food\"\n  }\n]\n"},
		{outputYAML, "- id: c1\n  name: Food\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			setOutputFormat(t, tt.format)
			var buf bytes.Buffer
			c := &cobra.Command{}
			c.SetOut(&buf)
			require.NoError(t, render(c, v, build))
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestMoneyFormatter(t *testing.T) {
	f := newMoneyFormatter(language.English, "EUR")
	require.Equal(t, "EUR 1,234.50", f.format(1234.5))
	require.Equal(t, "EUR -12.00", f.format(-12))
	require.Equal(t, "33.3%", f.percent(33.333))

	plain := newMoneyFormatter(language.English, "not-a-currency")
	require.Equal(t, "7.25", plain.format(7.25))
}

func TestPreferredLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "de_DE.UTF-8")
	require.Equal(t, "de-DE", preferredLanguage().String())

	t.Setenv("LANG", "C")
	require.Equal(t, language.English, preferredLanguage())
}

func TestMonthLabel(t *testing.T) {
	require.Equal(t, "Mar 2024", monthLabel(3, 2024))
	require.Equal(t, "2024", monthLabel(0, 2024))
}

func setupCLI(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	t.Setenv("API_BASE_URL", srv.URL)
	t.Setenv("FOLDER", t.TempDir())
	t.Setenv("TOKEN_STORE_KEY", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func signIn(t *testing.T) {
	t.Helper()
	a, err := app.New(config.New())
	require.NoError(t, err)
	require.NoError(t, a.Tokens.SetTokens("access-1", "refresh-1"))
	require.NoError(t, a.Close())
}

func TestStatusWithoutSession(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("status must not call the API, got %s", r.URL.Path)
	})

	out, err := execute(t, "status", "-o", "json")
	require.NoError(t, err)

	var report statusReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.False(t, report.SignedIn)
	require.False(t, report.Refresh)
}

func TestCommandsRequireLogin(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})

	_, err := execute(t, "categories", "list", "-o", "table")
	require.ErrorIs(t, err, errNotSignedIn)
}

func TestCategoriesList(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/v1/auth/me":
			w.Write([]byte(`{"data":{"id":"1","name":"Alice","currency":"USD"}}`))
		case "/api/v1/categories":
			assert.Equal(t, "expense", r.URL.Query().Get("type"))
			w.Write([]byte(`{"data":[{"id":"c1","name":"Food","type":"expense"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	signIn(t)

	out, err := execute(t, "categories", "list", "--type", "expense", "-o", "yaml")
	require.NoError(t, err)
	require.Equal(t, "- id: c1\n  name: Food\n  type: expense\n", out)
}

func TestLogoutClearsStoredSession(t *testing.T) {
	var logouts int
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/logout" {
			logouts++
		}
		w.WriteHeader(http.StatusNoContent)
	})
	signIn(t)

	_, err := execute(t, "logout", "-o", "table")
	require.NoError(t, err)
	require.Equal(t, 1, logouts)

	out, err := execute(t, "status", "-o", "json")
	require.NoError(t, err)
	var report statusReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.False(t, report.SignedIn)
}

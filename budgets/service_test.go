package budgets_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/budgets"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, h http.HandlerFunc) *budgets.Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return budgets.NewService(apiclient.New(srv.URL, http.DefaultTransport))
}

func TestProgress(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/budgets/progress", r.URL.Path)
		assert.Equal(t, "month=3&year=2024", r.URL.RawQuery)
		w.Write([]byte(`{"data":[
			{"id":"b1","category_id":"c1","amount":100,"month":3,"year":2024,"spent":120,"remaining":-20,"percentage":120},
			{"id":"b2","category_id":"c2","amount":200,"month":3,"year":2024,"spent":50,"remaining":150,"percentage":25}
		]}`))
	})

	progress, err := svc.Progress(context.Background(), budgets.Period{Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, progress, 2)
	require.True(t, progress[0].OverBudget())
	require.False(t, progress[1].OverBudget())
	require.Equal(t, "b1", progress[0].ID)
}

func TestListCurrentPeriodOmitsParams(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`{"data":[]}`))
	})

	list, err := svc.List(context.Background(), budgets.Period{})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreateValidates(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})

	_, err := svc.Create(context.Background(), budgets.NewBudget{CategoryID: "c1", Amount: 10, Month: 13, Year: 2024})
	require.ErrorIs(t, err, errors.ErrInvalidRequest)
	_, err = svc.Create(context.Background(), budgets.NewBudget{CategoryID: "c1", Month: 1, Year: 2024})
	require.ErrorIs(t, err, errors.ErrInvalidRequest)
}

func TestDuplicateBudget(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"message":"Budget already exists for this category and period"}}`))
	})

	_, err := svc.Create(context.Background(), budgets.NewBudget{CategoryID: "c1", Amount: 10, Month: 1, Year: 2024})
	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Contains(t, apiErr.Error(), "already exists")
}

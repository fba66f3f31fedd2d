package receipts_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/receipts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, h http.HandlerFunc) *receipts.Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return receipts.NewService(apiclient.New(srv.URL, http.DefaultTransport))
}

func TestUpload(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/receipts/upload", r.URL.Path)
		f, hdr, err := r.FormFile("receipt")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "coffee.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "png-bytes", string(data))
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"data":{"id":"rc1","filename":"coffee.png","status":"processing"}}`))
	})

	r, err := svc.Upload(context.Background(), "/tmp/scans/coffee.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, receipts.StatusProcessing, r.Status)
}

func TestWaitProcessed(t *testing.T) {
	var polls atomic.Int32
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/receipts/rc1/status":
			if polls.Add(1) < 3 {
				w.Write([]byte(`{"data":{"id":"rc1","status":"processing"}}`))
				return
			}
			w.Write([]byte(`{"data":{"id":"rc1","status":"completed"}}`))
		case "/receipts/rc1":
			w.Write([]byte(`{"data":{"id":"rc1","status":"completed","extracted_data":{"merchant":"Cafe","amount":3.5}}}`))
		}
	})

	r, err := svc.WaitProcessed(context.Background(), "rc1", 10*time.Millisecond)
	require.NoError(t, err)
	require.EqualValues(t, 3, polls.Load())
	require.Equal(t, "Cafe", r.Extracted.Merchant)
}

func TestWaitProcessedHonoursContext(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":"rc1","status":"processing"}}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := svc.WaitProcessed(ctx, "rc1", 10*time.Millisecond)
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReprocessAndDelete(t *testing.T) {
	var calls []string
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`{"data":{"id":"rc1","status":"processing"}}`))
	})

	_, err := svc.Reprocess(context.Background(), "rc1")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), "rc1"))
	require.Equal(t, []string{"POST /receipts/rc1/reprocess", "DELETE /receipts/rc1"}, calls)
}

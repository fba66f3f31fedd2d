package receipts

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	route       = "/receipts"
	uploadField = "receipt"

	DefaultPollInterval = 2 * time.Second
)

type Service struct {
	api    *apiclient.Client
	logger zerolog.Logger
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, logger: log.Logger}
}

// Upload sends the image as multipart field "receipt". Processing happens asynchronously;
// use Status or WaitProcessed to follow it.
func (s *Service) Upload(ctx context.Context, filename string, content io.Reader) (*Receipt, error) {
	var r Receipt
	err := s.api.Upload(ctx, route+"/upload", apiclient.FilePart{
		Field:       uploadField,
		Filename:    filepath.Base(filename),
		ContentType: mime.TypeByExtension(filepath.Ext(filename)),
		Content:     content,
	}, &r)
	if err != nil {
		s.logger.Err(err).Str("file", filename).Msg("Failed to upload receipt")
		return nil, err
	}
	return &r, nil
}

// List returns receipts, filtered by status unless status is empty
func (s *Service) List(ctx context.Context, status Status) ([]Receipt, error) {
	var out []Receipt
	q := apiclient.NewQuery().String("status", string(status))
	if err := s.api.Get(ctx, route, q.Values(), &out); err != nil {
		s.logger.Err(err).Msg("Failed to list receipts")
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Receipt, error) {
	var r Receipt
	if err := s.api.Get(ctx, route+"/"+url.PathEscape(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) Status(ctx context.Context, id string) (*StatusReport, error) {
	var st StatusReport
	if err := s.api.Get(ctx, route+"/"+url.PathEscape(id)+"/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, route+"/"+url.PathEscape(id), nil)
}

// Reprocess asks the server to run extraction again, e.g. after a failure
func (s *Service) Reprocess(ctx context.Context, id string) (*Receipt, error) {
	var r Receipt
	if err := s.api.Post(ctx, route+"/"+url.PathEscape(id)+"/reprocess", nil, &r); err != nil {
		s.logger.Err(err).Str("receipt", id).Msg("Failed to reprocess receipt")
		return nil, err
	}
	return &r, nil
}

// WaitProcessed polls the status endpoint every interval until the receipt is completed or
// failed, then returns the full receipt. A failed receipt is returned with a nil error;
// callers check Status.
func (s *Service) WaitProcessed(ctx context.Context, id string, interval time.Duration) (*Receipt, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		st, err := s.Status(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("poll receipt %s: %w", id, err)
		}
		if st.Status.Done() {
			return s.Get(ctx, id)
		}
		s.logger.Debug().Str("receipt", id).Str("status", string(st.Status)).Msg("Receipt still processing")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

package exports

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jrsteele09/go-finance-client/apiclient"
	"github.com/jrsteele09/go-finance-client/transactions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const route = "/export"

// Format is an export file type; its value is the endpoint suffix
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// DefaultFilename is used when the server does not name the file
func (f Format) DefaultFilename() string {
	switch f {
	case FormatExcel:
		return "transactions.xlsx"
	case FormatPDF:
		return "transactions.pdf"
	}
	return "transactions.csv"
}

// Filter narrows the exported transactions; empty fields are not sent
type Filter struct {
	StartDate  string
	EndDate    string
	CategoryID string
	Type       transactions.Kind
}

type Service struct {
	api    *apiclient.Client
	logger zerolog.Logger
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, logger: log.Logger}
}

func (s *Service) CSV(ctx context.Context, f Filter) (*apiclient.Download, error) {
	return s.Export(ctx, FormatCSV, f)
}

func (s *Service) Excel(ctx context.Context, f Filter) (*apiclient.Download, error) {
	return s.Export(ctx, FormatExcel, f)
}

func (s *Service) PDF(ctx context.Context, f Filter) (*apiclient.Download, error) {
	return s.Export(ctx, FormatPDF, f)
}

// Export streams the file; the caller closes the returned Body
func (s *Service) Export(ctx context.Context, format Format, f Filter) (*apiclient.Download, error) {
	q := apiclient.NewQuery().
		String("start_date", f.StartDate).
		String("end_date", f.EndDate).
		String("category_id", f.CategoryID).
		String("type", string(f.Type))

	d, err := s.api.Download(ctx, route+"/"+string(format), q.Values())
	if err != nil {
		s.logger.Err(err).Str("format", string(format)).Msg("Failed to export transactions")
		return nil, err
	}
	if d.Filename == "" {
		d.Filename = format.DefaultFilename()
	}
	return d, nil
}

// SaveTo exports into dir (or to the exact path when target is not a directory) and
// returns the written path
func (s *Service) SaveTo(ctx context.Context, format Format, f Filter, target string) (string, error) {
	d, err := s.Export(ctx, format, f)
	if err != nil {
		return "", err
	}
	defer d.Body.Close()

	path := target
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		path = filepath.Join(target, filepath.Base(d.Filename))
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(out, d.Body); err != nil {
		out.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, out.Close()
}

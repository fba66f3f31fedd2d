package apiclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	green      = "\033[32m"
	yellow     = "\033[33m"
	blue       = "\033[34m"
	magenta    = "\033[35m"
	cyan       = "\033[36m"
	gray       = "\033[90m"
	resetColor = "\033[0m"
)

var methodColors = map[string]string{
	http.MethodGet:    green,
	http.MethodPost:   blue,
	http.MethodPut:    cyan,
	http.MethodDelete: yellow,
	http.MethodPatch:  magenta,
}

// LoggingTransport logs every request that goes over the wire at debug level, including
// the refresh retries made by Transport
type LoggingTransport struct {
	base   http.RoundTripper
	colour bool
	logger zerolog.Logger
}

var _ http.RoundTripper = (*LoggingTransport)(nil)

// NewLoggingTransport wraps base. With colour set, methods are colour-coded for a terminal.
func NewLoggingTransport(base http.RoundTripper, colour bool) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &LoggingTransport{base: base, colour: colour, logger: log.Logger}
}

func (t *LoggingTransport) WithLogger(l zerolog.Logger) *LoggingTransport {
	t.logger = l
	return t
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	ev := t.logger.Debug().
		Str("method", t.displayMethod(req.Method)).
		Str("path", req.URL.Path).
		Str("request_id", req.Header.Get(HeaderRequestID)).
		Dur("took", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("Request failed")
		return nil, err
	}
	ev.Int("status", resp.StatusCode).Msg("Request")
	return resp, nil
}

func (t *LoggingTransport) displayMethod(method string) string {
	if !t.colour {
		return method
	}
	paddedMethod := fmt.Sprintf("%-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + resetColor
	}
	return gray + paddedMethod + resetColor
}

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Client calls the finance API. Every request goes through the transport it was built
// with, normally the authenticating Transport.
type Client struct {
	apiURL string
	http   *http.Client
	logger zerolog.Logger
}

type ClientOption func(*Client)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for the API rooted at apiURL (e.g. http://localhost:5000/api/v1)
func New(apiURL string, transport http.RoundTripper, opts ...ClientOption) *Client {
	c := &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		http:   &http.Client{Transport: transport, Timeout: 30 * time.Second},
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIURL returns the API root the client resolves paths against
func (c *Client) APIURL() string {
	return c.apiURL
}

// envelope is the success shape of every JSON endpoint
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends a JSON request and decodes the response's data member into out (if non-nil).
// Non-2xx responses are returned as *errors.APIError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doJSON(req, out)
}

// FilePart is one file in a multipart upload
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// Upload sends file as multipart/form-data. The form is built in memory so the request can
// be replayed after a token refresh.
func (c *Client) Upload(ctx context.Context, path string, file FilePart, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	var part io.Writer
	var err error
	if file.ContentType != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     file.Field,
			"filename": file.Filename,
		}))
		h.Set("Content-Type", file.ContentType)
		part, err = mw.CreatePart(h)
	} else {
		part, err = mw.CreateFormFile(file.Field, file.Filename)
	}
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return fmt.Errorf("read %s: %w", file.Filename, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.doJSON(req, out)
}

// Download is a raw (non-JSON) response body. The caller must close Body.
type Download struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
}

// Download performs a GET and hands back the raw body, as used for file exports
func (c *Client) Download(ctx context.Context, path string, query url.Values) (*Download, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, errors.FromResponse(resp)
	}

	d := &Download{Body: resp.Body, ContentType: resp.Header.Get("Content-Type")}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		d.Filename = params["filename"]
	}
	return d, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errors.FromResponse(resp)
		c.logger.Debug().Int("status", apiErr.Status).Str("path", req.URL.Path).Msg(apiErr.Message)
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

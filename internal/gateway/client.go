// Package gateway is the single egress point for backend calls. Every request
// carries the current bearer credential when one exists.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"course-manager-client/internal/logging"
)

const (
	contentTypeJSON = "application/json"
	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 30 * time.Second
)

// CredentialSource yields the bearer token to attach, consulted once per
// request.
type CredentialSource interface {
	CurrentToken() (string, bool)
}

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	http      Doer
	baseURL   url.URL
	creds     CredentialSource
	log       *zap.Logger
	requestID func() string
	timeout   time.Duration
}

type Option func(*Client)

func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = logging.OrNop(l) }
}

// WithTimeout bounds each request, whatever Doer carries it. Zero disables
// the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithRequestID(fn func() string) Option {
	return func(c *Client) { c.requestID = fn }
}

func New(baseURL string, creds CredentialSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "gateway: parse base url %q", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("gateway: base url %q must be absolute", baseURL)
	}
	if creds == nil {
		return nil, errors.New("gateway: credential source is required")
	}

	c := &Client{
		http:      http.DefaultClient,
		baseURL:   *u,
		creds:     creds,
		log:       zap.NewNop(),
		requestID: uuid.NewString,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("gateway")
	return c, nil
}

// Response is a successful (2xx) backend answer.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals a JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "gateway: decode response")
	}
	return nil
}

// Text returns the body as a message. Many backend operations answer with a
// bare string, either plain or JSON-quoted.
func (r *Response) Text() string {
	return messageFrom(r.Body)
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do issues one request. body, when non-nil, is JSON encoded. Errors are
// always *RequestError except for failures to build the request.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "gateway: encode body")
		}
		reader = bytes.NewReader(data)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrap(err, "gateway: build request")
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	reqID := c.requestID()
	if reqID != "" {
		req.Header.Set(requestIDHeader, reqID)
	}
	if token, ok := c.creds.CurrentToken(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
	}
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", append(fields, zap.Duration("duration", time.Since(started)), zap.Error(err))...)
		return nil, transportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("reading response failed", append(fields, zap.Int("status", resp.StatusCode), zap.Error(err))...)
		return nil, transportError(err)
	}

	fields = append(fields, zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(started)))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := responseError(resp.StatusCode, data)
		c.log.Warn("request rejected", append(fields, zap.String("message", re.Message))...)
		return nil, re
	}

	c.log.Debug("request completed", fields...)
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// resolve appends path (and its query) to the base URL's own path.
func (c *Client) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", errors.Wrapf(err, "gateway: parse path %q", path)
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", errors.Errorf("gateway: path %q must be relative to the backend", path)
	}

	u := c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	u.RawPath = ""
	u.RawQuery = ref.RawQuery
	u.Fragment = ""
	return u.String(), nil
}

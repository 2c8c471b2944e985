// Package api holds the typed collaborator operations of the course manager:
// the calls each screen of the application makes through the gateway, and the
// login/logout conventions around them.
package api

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"course-manager-client/internal/gateway"
	"course-manager-client/internal/logging"
	"course-manager-client/internal/session"
)

var (
	ErrNotLoggedIn      = errors.New("api: not logged in")
	ErrNotOrganizer     = errors.New("api: organizer role required")
	ErrSessionExpired   = errors.New("api: session expired, log in again")
	ErrPasswordTooShort = errors.New("api: new password must have at least 8 characters")
	ErrPasswordMismatch = errors.New("api: new passwords do not match")
)

// Gateway is the part of gateway.Client the operations need.
type Gateway interface {
	Get(ctx context.Context, path string) (*gateway.Response, error)
	Post(ctx context.Context, path string, body any) (*gateway.Response, error)
	Put(ctx context.Context, path string, body any) (*gateway.Response, error)
	Delete(ctx context.Context, path string) (*gateway.Response, error)
}

var _ Gateway = (*gateway.Client)(nil)

type Client struct {
	gw       Gateway
	sessions *session.Store
	validate *validator.Validate
	log      *zap.Logger
}

type Option func(*Client)

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(gw Gateway, sessions *session.Store, opts ...Option) *Client {
	c := &Client{
		gw:       gw,
		sessions: sessions,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logging.OrNop(c.log)
	return c
}

// RequireSession returns the active session or ErrNotLoggedIn.
func (c *Client) RequireSession() (session.Session, error) {
	sess, ok := c.sessions.Current()
	if !ok {
		return session.Session{}, ErrNotLoggedIn
	}
	return sess, nil
}

// RequireOrganizer is RequireSession restricted to organizers.
func (c *Client) RequireOrganizer() (session.Session, error) {
	sess, err := c.RequireSession()
	if err != nil {
		return sess, err
	}
	if !sess.IsOrganizer {
		return sess, ErrNotOrganizer
	}
	return sess, nil
}

// HandleAuthError ends the session when err is a 401 from the backend and
// reports ErrSessionExpired in its place. Other errors pass through.
func (c *Client) HandleAuthError(err error) error {
	if !gateway.IsUnauthorized(err) {
		return err
	}
	if _, active := c.sessions.Current(); active {
		c.log.Info("backend rejected credentials, logging out")
		c.sessions.Logout()
	}
	return &expiredError{cause: err}
}

type expiredError struct {
	cause error
}

func (e *expiredError) Error() string {
	return ErrSessionExpired.Error() + ": " + e.cause.Error()
}

func (e *expiredError) Is(target error) bool { return target == ErrSessionExpired }

func (e *expiredError) Unwrap() error { return e.cause }

func getJSON[T any](ctx context.Context, gw Gateway, path string) (T, error) {
	var out T
	resp, err := gw.Get(ctx, path)
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

func sendJSON[T any](ctx context.Context, call func(context.Context, string, any) (*gateway.Response, error), path string, body any) (T, error) {
	var out T
	resp, err := call(ctx, path, body)
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

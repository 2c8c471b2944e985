package api

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"course-manager-client/internal/model"
	"course-manager-client/internal/session"
)

// loginResponse tells an absent isOrganizer apart from false; the course
// backend leaves it out of the login body.
type loginResponse struct {
	session.LoginPayload
	Organizer *bool `json:"isOrganizer"`
}

// Login authenticates against the backend and activates the returned session.
// When the backend does not say whether the user organizes events, the user
// record is fetched with the new token to find out.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	resp, err := c.gw.Post(ctx, "/api/auth/login", model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return session.Session{}, err
	}
	var body loginResponse
	if err := resp.Decode(&body); err != nil {
		return session.Session{}, err
	}

	payload := body.LoginPayload
	if body.Organizer != nil {
		payload.IsOrganizer = *body.Organizer
	}
	sess, err := c.sessions.Login(payload)
	if err != nil || body.Organizer != nil {
		return sess, err
	}

	user, err := c.GetUser(ctx, sess.ID)
	if err != nil {
		c.log.Debug("organizer flag lookup failed", zap.Int64("user_id", sess.ID), zap.Error(err))
		return sess, nil
	}
	if user.IsOrganizer == sess.IsOrganizer {
		return sess, nil
	}
	payload.IsOrganizer = user.IsOrganizer
	return c.sessions.Login(payload)
}

// Register creates the account and logs straight into it.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (session.Session, error) {
	if err := c.validate.Struct(req); err != nil {
		return session.Session{}, errors.Wrap(err, "api: invalid registration")
	}
	if _, err := c.gw.Post(ctx, "/api/auth/register", req); err != nil {
		return session.Session{}, err
	}
	return c.Login(ctx, req.Email, req.Password)
}

func (c *Client) Logout() {
	c.sessions.Logout()
}

// ChangePassword checks the new password locally, submits the change, and
// ends the session so the user signs in with the new password.
func (c *Client) ChangePassword(ctx context.Context, current, next, repeat string) error {
	sess, err := c.RequireSession()
	if err != nil {
		return err
	}
	if len(next) < 8 {
		return ErrPasswordTooShort
	}
	if next != repeat {
		return ErrPasswordMismatch
	}

	path := fmt.Sprintf("/api/users/%d/password", sess.ID)
	if _, err := c.gw.Put(ctx, path, model.PasswordChange{CurrentPassword: current, NewPassword: next}); err != nil {
		return err
	}
	c.sessions.Logout()
	return nil
}

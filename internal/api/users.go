package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"

	"course-manager-client/internal/model"
)

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	return getJSON[[]model.User](ctx, c.gw, "/api/users")
}

func (c *Client) GetUser(ctx context.Context, id int64) (model.User, error) {
	return getJSON[model.User](ctx, c.gw, fmt.Sprintf("/api/users/%d", id))
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return getJSON[model.User](ctx, c.gw, "/api/users/email/"+url.PathEscape(email))
}

func (c *Client) UpdateUser(ctx context.Context, id int64, upd model.UserUpdate) (model.User, error) {
	if err := c.validate.Struct(upd); err != nil {
		return model.User{}, errors.Wrap(err, "api: invalid user update")
	}
	return sendJSON[model.User](ctx, c.gw.Put, fmt.Sprintf("/api/users/%d", id), upd)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/api/users/%d", id))
	return err
}

// Profile loads the record of the logged-in user.
func (c *Client) Profile(ctx context.Context) (model.User, error) {
	sess, err := c.RequireSession()
	if err != nil {
		return model.User{}, err
	}
	return c.GetUser(ctx, sess.ID)
}

package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"course-manager-client/internal/model"
)

func (c *Client) ListEvents(ctx context.Context) ([]model.Event, error) {
	return getJSON[[]model.Event](ctx, c.gw, "/api/events")
}

// FilterEvents lists upcoming events; zero fields of f are left out of the query.
func (c *Client) FilterEvents(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	q := url.Values{}
	if f.OrganizerID != 0 {
		q.Set("organizerId", strconv.FormatInt(f.OrganizerID, 10))
	}
	if f.ClassroomID != 0 {
		q.Set("classroomId", strconv.FormatInt(f.ClassroomID, 10))
	}
	if f.TagID != 0 {
		q.Set("tagId", strconv.FormatInt(f.TagID, 10))
	}
	if f.ExcludeFull {
		q.Set("excludeFull", "true")
	}
	path := "/api/events/filtered"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return getJSON[[]model.Event](ctx, c.gw, path)
}

// CreateEvent returns the backend's confirmation message.
func (c *Client) CreateEvent(ctx context.Context, req model.EventRequest) (string, error) {
	if err := c.validate.Struct(req); err != nil {
		return "", errors.Wrap(err, "api: invalid event")
	}
	resp, err := c.gw.Post(ctx, "/api/events/create", req)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, req model.EventRequest) (string, error) {
	if err := c.validate.Struct(req); err != nil {
		return "", errors.Wrap(err, "api: invalid event")
	}
	resp, err := c.gw.Put(ctx, fmt.Sprintf("/api/events/%d/update", id), req)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/api/events/%d/delete", id))
	return err
}

func (c *Client) OrganizedEvents(ctx context.Context, organizerID int64) ([]model.Event, error) {
	return getJSON[[]model.Event](ctx, c.gw, fmt.Sprintf("/api/events/organizers/%d/events", organizerID))
}

func (c *Client) ParticipatingEvents(ctx context.Context, userID int64) ([]model.Event, error) {
	return getJSON[[]model.Event](ctx, c.gw, fmt.Sprintf("/api/events/participants/%d", userID))
}

// PastEvents lists finished events the current user took part in.
func (c *Client) PastEvents(ctx context.Context) ([]model.Event, error) {
	sess, err := c.RequireSession()
	if err != nil {
		return nil, err
	}
	return getJSON[[]model.Event](ctx, c.gw, fmt.Sprintf("/api/events/participants/%d/past", sess.ID))
}

func (c *Client) FutureEvents(ctx context.Context) ([]model.Event, error) {
	sess, err := c.RequireSession()
	if err != nil {
		return nil, err
	}
	return getJSON[[]model.Event](ctx, c.gw, fmt.Sprintf("/api/events/participants/%d/future", sess.ID))
}

// Enroll signs the current user up for the event.
func (c *Client) Enroll(ctx context.Context, eventID int64) (string, error) {
	sess, err := c.RequireSession()
	if err != nil {
		return "", err
	}
	resp, err := c.gw.Post(ctx, fmt.Sprintf("/api/events/%d/enroll/%d", eventID, sess.ID), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

package api

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"course-manager-client/internal/model"
)

func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	return getJSON[[]model.Tag](ctx, c.gw, "/api/tags")
}

func (c *Client) GetTag(ctx context.Context, id int64) (model.Tag, error) {
	return getJSON[model.Tag](ctx, c.gw, fmt.Sprintf("/api/tags/%d", id))
}

func (c *Client) CreateTag(ctx context.Context, tag model.Tag) (model.Tag, error) {
	if err := c.validate.Struct(tag); err != nil {
		return model.Tag{}, errors.Wrap(err, "api: invalid tag")
	}
	return sendJSON[model.Tag](ctx, c.gw.Post, "/api/tags", tag)
}

func (c *Client) UpdateTag(ctx context.Context, id int64, tag model.Tag) (model.Tag, error) {
	if err := c.validate.Struct(tag); err != nil {
		return model.Tag{}, errors.Wrap(err, "api: invalid tag")
	}
	return sendJSON[model.Tag](ctx, c.gw.Put, fmt.Sprintf("/api/tags/%d", id), tag)
}

func (c *Client) DeleteTag(ctx context.Context, id int64) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/api/tags/%d", id))
	return err
}

func (c *Client) ListClassrooms(ctx context.Context) ([]model.Classroom, error) {
	return getJSON[[]model.Classroom](ctx, c.gw, "/api/classrooms")
}

func (c *Client) GetClassroom(ctx context.Context, id int64) (model.Classroom, error) {
	return getJSON[model.Classroom](ctx, c.gw, fmt.Sprintf("/api/classrooms/%d", id))
}

func (c *Client) CreateClassroom(ctx context.Context, room model.Classroom) (model.Classroom, error) {
	if err := c.validate.Struct(room); err != nil {
		return model.Classroom{}, errors.Wrap(err, "api: invalid classroom")
	}
	return sendJSON[model.Classroom](ctx, c.gw.Post, "/api/classrooms", room)
}

func (c *Client) UpdateClassroom(ctx context.Context, id int64, room model.Classroom) (model.Classroom, error) {
	if err := c.validate.Struct(room); err != nil {
		return model.Classroom{}, errors.Wrap(err, "api: invalid classroom")
	}
	return sendJSON[model.Classroom](ctx, c.gw.Put, fmt.Sprintf("/api/classrooms/%d", id), room)
}

func (c *Client) DeleteClassroom(ctx context.Context, id int64) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/api/classrooms/%d", id))
	return err
}

package api

import (
	"context"

	"golang.org/x/sync/errgroup"

	"course-manager-client/internal/model"
)

type HomeView struct {
	Events []model.Event
	Tags   []model.Tag
}

type MyEventsView struct {
	Past   []model.Event
	Future []model.Event
}

type AdminView struct {
	Users      []model.User
	Events     []model.Event
	Tags       []model.Tag
	Classrooms []model.Classroom
}

// Home loads the landing page data. The calls run concurrently; the first
// failure is returned and no partial view is.
func (c *Client) Home(ctx context.Context) (HomeView, error) {
	var v HomeView
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		v.Events, err = c.ListEvents(ctx)
		return err
	})
	g.Go(func() (err error) {
		v.Tags, err = c.ListTags(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return HomeView{}, err
	}
	return v, nil
}

func (c *Client) MyEvents(ctx context.Context) (MyEventsView, error) {
	if _, err := c.RequireSession(); err != nil {
		return MyEventsView{}, err
	}

	var v MyEventsView
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		v.Past, err = c.PastEvents(ctx)
		return err
	})
	g.Go(func() (err error) {
		v.Future, err = c.FutureEvents(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return MyEventsView{}, err
	}
	return v, nil
}

// AdminPanel needs the organizer role.
func (c *Client) AdminPanel(ctx context.Context) (AdminView, error) {
	if _, err := c.RequireOrganizer(); err != nil {
		return AdminView{}, err
	}

	var v AdminView
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		v.Users, err = c.ListUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		v.Events, err = c.ListEvents(ctx)
		return err
	})
	g.Go(func() (err error) {
		v.Tags, err = c.ListTags(ctx)
		return err
	})
	g.Go(func() (err error) {
		v.Classrooms, err = c.ListClassrooms(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return AdminView{}, err
	}
	return v, nil
}

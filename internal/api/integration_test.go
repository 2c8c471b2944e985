package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"course-manager-client/internal/auth"
	"course-manager-client/internal/gateway"
	"course-manager-client/internal/model"
	"course-manager-client/internal/server"
	"course-manager-client/internal/session"
	"course-manager-client/internal/storage"
	"course-manager-client/internal/store"
)

// startBackend serves the development router and returns its base URL.
func startBackend(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := server.NewRouter(server.Deps{
		Store:       store.New(store.WithPasswordCost(bcrypt.MinCost)),
		TokenConfig: auth.TokenConfig{Secret: "secret", Expiry: time.Hour, Issuer: "test"},
		Log:         zaptest.NewLogger(t),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func newLiveClient(t *testing.T, baseURL string, st storage.Storage) (*Client, *session.Store) {
	t.Helper()
	log := zaptest.NewLogger(t)
	sessions := session.NewStore(st, log)
	sessions.Initialize()
	gw, err := gateway.New(baseURL, sessions.Credentials(), gateway.WithLogger(log))
	require.NoError(t, err)
	return New(gw, sessions, WithLogger(log)), sessions
}

func TestLive_RegisterEnrollAndRestart(t *testing.T) {
	be := startBackend(t)
	ctx := context.Background()
	stateFile := filepath.Join(t.TempDir(), "state.json")
	fileStorage := storage.NewFile(stateFile)

	organizer, _ := newLiveClient(t, be, storage.NewMemory())
	_, err := organizer.Register(ctx, model.RegisterRequest{
		Firstname: "Rob", Surname: "Kowalski", Age: 45, Email: "rob@x.com", Password: "password1", IsOrganizer: true,
	})
	require.NoError(t, err)
	orgSess, err := organizer.RequireOrganizer()
	require.NoError(t, err)

	tag, err := organizer.CreateTag(ctx, model.Tag{Name: "AI"})
	require.NoError(t, err)
	room, err := organizer.CreateClassroom(ctx, model.Classroom{Capacity: 20, Location: "B1", ClassroomName: "101A"})
	require.NoError(t, err)
	start := time.Now().Add(72 * time.Hour)
	msg, err := organizer.CreateEvent(ctx, model.EventRequest{
		Name:            "Intro to AI",
		StartDatetime:   model.NewLocalTime(start),
		EndDatetime:     model.NewLocalTime(start.Add(2 * time.Hour)),
		MaxParticipants: 10,
		OrganizerID:     orgSess.ID,
		ClassroomID:     room.ID,
		TagIDs:          []int64{tag.ID},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "Event created with ID: "), msg)

	ann, annSessions := newLiveClient(t, be, fileStorage)
	sess, err := ann.Register(ctx, model.RegisterRequest{
		Firstname: "Ann", Surname: "Lee", Age: 30, Email: "ann@x.com", Password: "password1",
	})
	require.NoError(t, err)
	assert.False(t, sess.IsOrganizer)
	_, err = ann.AdminPanel(ctx)
	assert.ErrorIs(t, err, ErrNotOrganizer)

	events, err := ann.FilterEvents(ctx, model.EventFilter{TagID: tag.ID})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Rob Kowalski", events[0].OrganizerName)

	msg, err = ann.Enroll(ctx, events[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "User enrolled in event successfully", msg)

	// A fresh process over the same state file resumes the session.
	restarted, restartedSessions := newLiveClient(t, be, storage.NewFile(stateFile))
	current, ok := restartedSessions.Current()
	require.True(t, ok)
	assert.Equal(t, sess.ID, current.ID)

	view, err := restarted.MyEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Past)
	require.Len(t, view.Future, 1)
	assert.Equal(t, "Intro to AI", view.Future[0].Name)

	annSessions.Logout()
	_, err = restarted.ListEvents(ctx)
	require.Error(t, err, "logout cleared the shared token")
	err = restarted.HandleAuthError(err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	_, ok = restartedSessions.Current()
	assert.False(t, ok)
}

func TestLive_ErrorsAreNormalized(t *testing.T) {
	be := startBackend(t)
	ctx := context.Background()
	c, _ := newLiveClient(t, be, storage.NewMemory())

	_, err := c.Login(ctx, "nobody@x.com", "password1")
	var re *gateway.RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusUnauthorized, re.Status)
	assert.Equal(t, "Invalid email or password.", re.Message)

	_, err = c.Register(ctx, model.RegisterRequest{Firstname: "Ann", Surname: "Lee", Email: "ann@x.com", Password: "password1"})
	require.NoError(t, err)
	c.Logout()
	_, err = c.Register(ctx, model.RegisterRequest{Firstname: "Ann", Surname: "Lee", Email: "ann@x.com", Password: "password1"})
	assert.Equal(t, http.StatusConflict, gateway.StatusOf(err))

	_, err = c.Login(ctx, "ann@x.com", "password1")
	require.NoError(t, err)
	_, err = c.Enroll(ctx, 999)
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusNotFound, re.Status)
	assert.Equal(t, "Event not found", re.Message)

	require.NoError(t, c.ChangePassword(ctx, "password1", "newpassword", "newpassword"))
	_, err = c.RequireSession()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = c.Login(ctx, "ann@x.com", "newpassword")
	assert.NoError(t, err)
}

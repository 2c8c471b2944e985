package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"course-manager-client/internal/auth"
	"course-manager-client/internal/middleware"
	"course-manager-client/internal/model"
	"course-manager-client/internal/store"
)

var testTokenConfig = auth.TokenConfig{Secret: "secret", Expiry: time.Hour, Issuer: "test"}

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.New(store.WithPasswordCost(bcrypt.MinCost))
	return NewRouter(Deps{Store: st, TokenConfig: testTokenConfig}), st
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r http.Handler, email string, organizer bool) (int64, string) {
	t.Helper()
	w := do(r, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Firstname: "Ann", Surname: "Lee", Age: 30, Email: email, Password: "password1", IsOrganizer: organizer,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: email, Password: "password1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token  string `json:"token"`
		UserID int64  `json:"userId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Token == "" || resp.UserID == 0 {
		t.Fatalf("unexpected login payload %s", w.Body.String())
	}
	return resp.UserID, resp.Token
}

func TestAuthFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	_, token := registerAndLogin(t, r, "ann@x.com", false)

	w := do(r, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Firstname: "Ann", Surname: "Lee", Email: "ann@x.com", Password: "password1",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	w = do(r, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "ann@x.com", Password: "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("expected plain-text error, got %q", ct)
	}

	w = do(r, http.MethodGet, "/api/events", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	w = do(r, http.MethodGet, "/api/events", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", w.Code)
	}
}

func TestRegister_Validation(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Firstname: "Ann", Surname: "Lee", Email: "not-an-email", Password: "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	r, _ := newTestRouter(t)
	id, token := registerAndLogin(t, r, "ann@x.com", false)
	path := fmt.Sprintf("/api/users/%d/password", id)

	w := do(r, http.MethodPut, path, token, model.PasswordChange{CurrentPassword: "wrong", NewPassword: "newpassword"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	w = do(r, http.MethodPut, path, token, model.PasswordChange{CurrentPassword: "password1", NewPassword: "newpassword"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodPut, "/api/users/999/password", token, model.PasswordChange{CurrentPassword: "a", NewPassword: "b"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown user, got %d", w.Code)
	}
}

func TestEventsAndEnroll(t *testing.T) {
	r, st := newTestRouter(t)
	orgID, orgToken := registerAndLogin(t, r, "org@x.com", true)
	annID, annToken := registerAndLogin(t, r, "ann@x.com", false)
	room := st.CreateClassroom(model.Classroom{Capacity: 10, Location: "B1", ClassroomName: "101A"})

	w := do(r, http.MethodPost, "/api/tags", orgToken, model.Tag{Name: "AI"})
	if w.Code != http.StatusOK {
		t.Fatalf("create tag: %d %s", w.Code, w.Body.String())
	}
	var tag model.Tag
	if err := json.Unmarshal(w.Body.Bytes(), &tag); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	start := time.Now().Add(48 * time.Hour)
	w = do(r, http.MethodPost, "/api/events/create", orgToken, model.EventRequest{
		Name:            "Intro",
		StartDatetime:   model.NewLocalTime(start),
		EndDatetime:     model.NewLocalTime(start.Add(time.Hour)),
		MaxParticipants: 1,
		OrganizerID:     orgID,
		ClassroomID:     room.ID,
		TagIDs:          []int64{tag.ID},
	})
	if w.Code != http.StatusOK || w.Body.String() != "Event created with ID: 1" {
		t.Fatalf("create event: %d %q", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, fmt.Sprintf("/api/events/1/enroll/%d", annID), annToken, nil)
	if w.Code != http.StatusOK || w.Body.String() != "User enrolled in event successfully" {
		t.Fatalf("enroll: %d %q", w.Code, w.Body.String())
	}
	w = do(r, http.MethodPost, fmt.Sprintf("/api/events/1/enroll/%d", orgID), orgToken, nil)
	if w.Code != http.StatusBadRequest || w.Body.String() != "Event is full" {
		t.Fatalf("enroll full: %d %q", w.Code, w.Body.String())
	}
	w = do(r, http.MethodPost, fmt.Sprintf("/api/events/9/enroll/%d", annID), annToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("enroll missing: %d", w.Code)
	}

	var future []model.Event
	w = do(r, http.MethodGet, fmt.Sprintf("/api/events/participants/%d/future", annID), annToken, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &future); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(future) != 1 || future[0].OrganizerName != "Ann Lee" || future[0].ClassroomName != "101A" {
		t.Fatalf("unexpected future events %+v", future)
	}

	var filtered []model.Event
	w = do(r, http.MethodGet, fmt.Sprintf("/api/events/filtered?tagId=%d&excludeFull=true", tag.ID), annToken, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &filtered); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(filtered) != 0 {
		t.Fatalf("expected full event excluded, got %d", len(filtered))
	}

	w = do(r, http.MethodGet, "/api/events/filtered?tagId=abc", annToken, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad tagId, got %d", w.Code)
	}

	w = do(r, http.MethodDelete, "/api/events/1/delete", orgToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete event: %d", w.Code)
	}
	w = do(r, http.MethodDelete, "/api/events/1/delete", orgToken, nil)
	if w.Code != http.StatusNotFound || w.Body.String() != "Event not found" {
		t.Fatalf("delete missing: %d %q", w.Code, w.Body.String())
	}
}

func TestUsersEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)
	id, token := registerAndLogin(t, r, "ann@x.com", false)

	w := do(r, http.MethodGet, "/api/users/email/ann@x.com", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("by email: %d", w.Code)
	}
	w = do(r, http.MethodGet, "/api/users/404", token, nil)
	if w.Code != http.StatusNotFound || w.Body.Len() != 0 {
		t.Fatalf("missing user: %d %q", w.Code, w.Body.String())
	}

	name := "Anna"
	w = do(r, http.MethodPut, fmt.Sprintf("/api/users/%d", id), token, model.UserUpdate{Firstname: &name})
	var user model.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if user.Firstname != "Anna" || user.Email != "ann@x.com" {
		t.Fatalf("unexpected user %+v", user)
	}

	w = do(r, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}
}

func TestLoginRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := middleware.NewRateLimiter(2, time.Minute)
	defer limiter.Close()
	r := NewRouter(Deps{
		Store:        store.New(store.WithPasswordCost(bcrypt.MinCost)),
		TokenConfig:  testTokenConfig,
		LoginLimiter: limiter,
	})

	var last int
	for i := 0; i < 3; i++ {
		last = do(r, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "x@x.com", Password: "p"}).Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", last)
	}
}

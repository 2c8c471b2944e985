package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"course-manager-client/internal/store"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{store.ErrEmailTaken, http.StatusConflict},
		{store.ErrInvalidCredentials, http.StatusUnauthorized},
		{store.ErrWrongPassword, http.StatusForbidden},
		{store.ErrUserNotFound, http.StatusBadRequest},
		{store.ErrEventFull, http.StatusBadRequest},
		{store.ErrTagsNotFound, http.StatusBadRequest},
		{store.ErrEventNotFound, http.StatusNotFound},
		{store.ErrClassroomNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", store.ErrTagNotFound), http.StatusNotFound},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, got)
		}
	}
}

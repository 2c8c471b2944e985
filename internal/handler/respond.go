package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"course-manager-client/internal/store"
)

var validate = validator.New()

// writeStoreError answers with a plain-text body, the way the course backend
// reports failures.
func writeStoreError(c *gin.Context, err error) {
	c.String(statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrWrongPassword):
		return http.StatusForbidden
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrEventFull),
		errors.Is(err, store.ErrAlreadyEnrolled),
		errors.Is(err, store.ErrOrganizerNotFound),
		errors.Is(err, store.ErrTagsNotFound):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrEventNotFound),
		errors.Is(err, store.ErrClassroomNotFound),
		errors.Is(err, store.ErrTagNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes and validates the body; on failure it has already replied.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func optionalIDQuery(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

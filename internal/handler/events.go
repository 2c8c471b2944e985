package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"course-manager-client/internal/model"
	"course-manager-client/internal/store"
)

type EventHandler struct {
	Store *store.Store
}

func (h *EventHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ListEvents())
}

func (h *EventHandler) Create(c *gin.Context) {
	var body model.EventRequest
	if !bindJSON(c, &body) {
		return
	}
	ev, err := h.Store.CreateEvent(body)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.String(http.StatusOK, fmt.Sprintf("Event created with ID: %d", ev.ID))
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "eventId")
	if !ok {
		return
	}
	var body model.EventRequest
	if !bindJSON(c, &body) {
		return
	}
	if _, err := h.Store.UpdateEvent(id, body); err != nil {
		writeStoreError(c, err)
		return
	}
	c.String(http.StatusOK, fmt.Sprintf("Event with ID %d has been updated successfully.", id))
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "eventId")
	if !ok {
		return
	}
	if err := h.Store.DeleteEvent(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.String(http.StatusOK, fmt.Sprintf("Event with ID %d has been deleted successfully.", id))
}

func (h *EventHandler) Organized(c *gin.Context) {
	id, ok := idParam(c, "organizerId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Store.OrganizedEvents(id))
}

func (h *EventHandler) Participating(c *gin.Context) {
	id, ok := idParam(c, "participantId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Store.ParticipatingEvents(id))
}

func (h *EventHandler) Past(c *gin.Context) {
	id, ok := idParam(c, "participantId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Store.PastEvents(id))
}

func (h *EventHandler) Future(c *gin.Context) {
	id, ok := idParam(c, "participantId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Store.FutureEvents(id))
}

func (h *EventHandler) Filtered(c *gin.Context) {
	var f model.EventFilter
	var ok bool
	if f.OrganizerID, ok = optionalIDQuery(c, "organizerId"); !ok {
		return
	}
	if f.ClassroomID, ok = optionalIDQuery(c, "classroomId"); !ok {
		return
	}
	if f.TagID, ok = optionalIDQuery(c, "tagId"); !ok {
		return
	}
	if raw := c.Query("excludeFull"); raw != "" {
		exclude, err := strconv.ParseBool(raw)
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid excludeFull")
			return
		}
		f.ExcludeFull = exclude
	}
	c.JSON(http.StatusOK, h.Store.FilterEvents(f))
}

func (h *EventHandler) Enroll(c *gin.Context) {
	eventID, ok := idParam(c, "eventId")
	if !ok {
		return
	}
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	if err := h.Store.Enroll(eventID, userID); err != nil {
		status := statusFor(err)
		if errors.Is(err, store.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.String(status, err.Error())
		return
	}
	c.String(http.StatusOK, "User enrolled in event successfully")
}

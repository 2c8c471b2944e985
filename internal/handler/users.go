package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-manager-client/internal/model"
	"course-manager-client/internal/store"
)

type UserHandler struct {
	Store *store.Store
}

func (h *UserHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ListUsers())
}

// Get answers 404 with an empty body for unknown ids.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := h.Store.GetUser(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.Store.GetUserByEmail(c.Param("email"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body model.UserUpdate
	if !bindJSON(c, &body) {
		return
	}
	user, err := h.Store.UpdateUser(id, body)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteUser(id); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body model.PasswordChange
	if !bindJSON(c, &body) {
		return
	}
	if err := h.Store.UpdatePassword(id, body.CurrentPassword, body.NewPassword); err != nil {
		writeStoreError(c, err)
		return
	}
	c.String(http.StatusOK, "Password updated successfully.")
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-manager-client/internal/model"
	"course-manager-client/internal/store"
)

type TagHandler struct {
	Store *store.Store
}

func (h *TagHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ListTags())
}

func (h *TagHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	tag, err := h.Store.GetTag(id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Create(c *gin.Context) {
	var body model.Tag
	if !bindJSON(c, &body) {
		return
	}
	c.JSON(http.StatusOK, h.Store.CreateTag(body))
}

func (h *TagHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body model.Tag
	if !bindJSON(c, &body) {
		return
	}
	tag, err := h.Store.UpdateTag(id, body)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteTag(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.String(http.StatusOK, "Tag deleted")
}

type ClassroomHandler struct {
	Store *store.Store
}

func (h *ClassroomHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ListClassrooms())
}

func (h *ClassroomHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	room, err := h.Store.GetClassroom(id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *ClassroomHandler) Create(c *gin.Context) {
	var body model.Classroom
	if !bindJSON(c, &body) {
		return
	}
	c.JSON(http.StatusOK, h.Store.CreateClassroom(body))
}

func (h *ClassroomHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body model.Classroom
	if !bindJSON(c, &body) {
		return
	}
	room, err := h.Store.UpdateClassroom(id, body)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *ClassroomHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteClassroom(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.String(http.StatusOK, "Classroom deleted")
}

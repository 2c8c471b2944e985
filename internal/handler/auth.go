package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-manager-client/internal/auth"
	"course-manager-client/internal/model"
	"course-manager-client/internal/store"
)

type AuthHandler struct {
	Store       *store.Store
	TokenConfig auth.TokenConfig
	Log         *zap.Logger
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body model.RegisterRequest
	if !bindJSON(c, &body) {
		return
	}

	user, err := h.Store.RegisterUser(body)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	h.Log.Info("user registered", zap.Int64("user_id", user.ID), zap.Bool("organizer", user.IsOrganizer))
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body model.LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Store.Authenticate(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			h.Log.Warn("login rejected", zap.String("client_ip", c.ClientIP()))
		}
		writeStoreError(c, err)
		return
	}

	token, err := auth.CreateToken(user.ID, user.Email, h.TokenConfig)
	if err != nil {
		h.Log.Error("token creation failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Token creation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Logged in successfully",
		"token":       token,
		"userId":      user.ID,
		"firstname":   user.Firstname,
		"surname":     user.Surname,
		"email":       user.Email,
		"isOrganizer": user.IsOrganizer,
	})
}

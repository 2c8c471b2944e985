package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-manager-client/internal/auth"
	"course-manager-client/internal/handler"
	"course-manager-client/internal/logging"
	"course-manager-client/internal/middleware"
	"course-manager-client/internal/store"
)

type Deps struct {
	Store        *store.Store
	TokenConfig  auth.TokenConfig
	Log          *zap.Logger
	LoginLimiter *middleware.RateLimiter
}

// NewRouter wires the course REST contract. Everything outside /api/auth and
// /health needs a bearer token.
func NewRouter(deps Deps) *gin.Engine {
	log := logging.OrNop(deps.Log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	authHandler := &handler.AuthHandler{Store: deps.Store, TokenConfig: deps.TokenConfig, Log: log}
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	if deps.LoginLimiter != nil {
		authGroup.POST("/login", middleware.RateLimitMiddleware(deps.LoginLimiter), authHandler.Login)
	} else {
		authGroup.POST("/login", authHandler.Login)
	}

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(deps.TokenConfig))

	users := &handler.UserHandler{Store: deps.Store}
	api.GET("/users", users.List)
	api.GET("/users/:id", users.Get)
	api.GET("/users/email/:email", users.GetByEmail)
	api.PUT("/users/:id", users.Update)
	api.DELETE("/users/:id", users.Delete)
	api.PUT("/users/:id/password", users.ChangePassword)

	events := &handler.EventHandler{Store: deps.Store}
	api.GET("/events", events.List)
	api.POST("/events/create", events.Create)
	api.PUT("/events/:eventId/update", events.Update)
	api.DELETE("/events/:eventId/delete", events.Delete)
	api.POST("/events/:eventId/enroll/:userId", events.Enroll)
	api.GET("/events/filtered", events.Filtered)
	api.GET("/events/organizers/:organizerId/events", events.Organized)
	api.GET("/events/participants/:participantId", events.Participating)
	api.GET("/events/participants/:participantId/past", events.Past)
	api.GET("/events/participants/:participantId/future", events.Future)

	tags := &handler.TagHandler{Store: deps.Store}
	api.GET("/tags", tags.List)
	api.GET("/tags/:id", tags.Get)
	api.POST("/tags", tags.Create)
	api.PUT("/tags/:id", tags.Update)
	api.DELETE("/tags/:id", tags.Delete)

	classrooms := &handler.ClassroomHandler{Store: deps.Store}
	api.GET("/classrooms", classrooms.List)
	api.GET("/classrooms/:id", classrooms.Get)
	api.POST("/classrooms", classrooms.Create)
	api.PUT("/classrooms/:id", classrooms.Update)
	api.DELETE("/classrooms/:id", classrooms.Delete)

	return r
}

package routes

import (
	"net/http"

	"gathero_backend/internal/handlers"
	"gathero_backend/internal/services"
	"gathero_backend/internal/storage"
	"gathero_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// Register mounts the full /api/v1 surface.
func Register(router *gin.Engine, container *services.Container, store storage.Storage) {
	v := validator.New()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	handlers.NewAuthHandler(v, container.Auth).RegisterRoutes(api)
	handlers.NewUserHandler(v, container.Users, container.Tokens).RegisterRoutes(api)
	handlers.NewEventHandler(v, container.Events, container.Tokens).RegisterRoutes(api)
	handlers.NewParticipationHandler(v, container.Participation, container.Tokens).RegisterRoutes(api)
	handlers.NewNotificationHandler(v, container.Notifications, container.Tokens).RegisterRoutes(api)
	handlers.NewCommentHandler(v, container.Comments, container.Tokens).RegisterRoutes(api)
	handlers.NewAdminHandler(v, container.Settings, container.Users, container.Tokens).RegisterRoutes(api)
	handlers.NewFileHandler(store).RegisterRoutes(api)
}

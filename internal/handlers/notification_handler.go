package handlers

import (
	"net/http"

	"gathero_backend/internal/auth"
	"gathero_backend/internal/dto"
	"gathero_backend/internal/middleware"
	"gathero_backend/internal/services"
	"gathero_backend/internal/validator"
	"gathero_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
	tokens              *auth.TokenManager
}

func NewNotificationHandler(v *validator.Validator, notificationService services.NotificationService, tokens *auth.TokenManager) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(v),
		notificationService: notificationService,
		tokens:              tokens,
	}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications", middleware.Auth(h.tokens))
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PUT("/:id/read", h.MarkAsRead)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.DELETE("/:id", h.DeleteNotification)
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var criteria dto.NotificationCriteria
	if !h.BindQueryAndValidate(c, &criteria) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	list, svcErr := h.notificationService.ListNotifications(
		c.Request.Context(), db, h.CurrentUserID(c), criteria)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	count, svcErr := h.notificationService.GetUnreadCount(
		c.Request.Context(), db, h.CurrentUserID(c))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	svcErr := h.notificationService.MarkAsRead(
		c.Request.Context(), db, h.CurrentUserID(c), c.Param("id"))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	svcErr := h.notificationService.MarkAllAsRead(
		c.Request.Context(), db, h.CurrentUserID(c))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	svcErr := h.notificationService.DeleteNotification(
		c.Request.Context(), db, h.CurrentUserID(c), c.Param("id"))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"mime/multipart"
	"net/http"

	"gathero_backend/internal/auth"
	"gathero_backend/internal/dto"
	"gathero_backend/internal/middleware"
	"gathero_backend/internal/services"
	"gathero_backend/internal/validator"
	"gathero_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	BaseHandler
	eventService services.EventService
	tokens       *auth.TokenManager
}

func NewEventHandler(v *validator.Validator, eventService services.EventService, tokens *auth.TokenManager) *EventHandler {
	return &EventHandler{
		BaseHandler:  NewBaseHandler(v),
		eventService: eventService,
		tokens:       tokens,
	}
}

func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.GET("", h.ListEvents)
		events.GET("/:id", h.GetEvent)
	}

	protected := rg.Group("/events", middleware.Auth(h.tokens))
	{
		protected.POST("", h.CreateEvent)
		protected.PUT("/:id", h.UpdateEvent)
		protected.DELETE("/:id", h.DeleteEvent)
	}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	var criteria dto.EventCriteria
	if !h.BindQueryAndValidate(c, &criteria) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	list, svcErr := h.eventService.ListEvents(c.Request.Context(), db, criteria)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	event, svcErr := h.eventService.GetEvent(c.Request.Context(), db, c.Param("id"))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if !h.BindFormAndValidate(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	event, svcErr := h.eventService.CreateEvent(
		c.Request.Context(), db, h.CurrentUserID(c), &req, h.imageFile(c))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventRequest
	if !h.BindFormAndValidate(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	event, svcErr := h.eventService.UpdateEvent(
		c.Request.Context(), db, h.CurrentUserID(c), c.Param("id"), &req, h.imageFile(c))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	svcErr := h.eventService.DeleteEvent(
		c.Request.Context(), db, h.CurrentUserID(c), h.CurrentRole(c), c.Param("id"))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// imageFile extracts the optional "image" part of a multipart form. A
// missing part means "no image change".
func (h *EventHandler) imageFile(c *gin.Context) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return file
}

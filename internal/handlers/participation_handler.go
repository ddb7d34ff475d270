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

type ParticipationHandler struct {
	BaseHandler
	participationService services.ParticipationService
	tokens               *auth.TokenManager
}

func NewParticipationHandler(v *validator.Validator, participationService services.ParticipationService, tokens *auth.TokenManager) *ParticipationHandler {
	return &ParticipationHandler{
		BaseHandler:          NewBaseHandler(v),
		participationService: participationService,
		tokens:               tokens,
	}
}

func (h *ParticipationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events", middleware.Auth(h.tokens))
	{
		events.POST("/:id/join", h.JoinEvent)
		events.DELETE("/:id/join", h.LeaveEvent)
		events.GET("/:id/participants", h.ListParticipations)
	}

	participations := rg.Group("/participations", middleware.Auth(h.tokens))
	{
		participations.PUT("/:id/status", h.UpdateStatus)
	}
}

func (h *ParticipationHandler) JoinEvent(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	participation, svcErr := h.participationService.JoinEvent(
		c.Request.Context(), db, h.CurrentUserID(c), c.Param("id"))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, participation)
}

func (h *ParticipationHandler) LeaveEvent(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	svcErr := h.participationService.LeaveEvent(
		c.Request.Context(), db, h.CurrentUserID(c), c.Param("id"))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ParticipationHandler) ListParticipations(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	participations, svcErr := h.participationService.ListEventParticipations(
		c.Request.Context(), db, h.CurrentUserID(c), h.CurrentRole(c), c.Param("id"))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participations": participations})
}

func (h *ParticipationHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateParticipationStatusRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	participation, svcErr := h.participationService.UpdateStatus(
		c.Request.Context(), db, h.CurrentUserID(c), c.Param("id"), &req)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, participation)
}

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

// AdminHandler exposes the admin surface: system settings and user
// removal.
type AdminHandler struct {
	BaseHandler
	settingsService services.SettingsService
	userService     services.UserService
	tokens          *auth.TokenManager
}

func NewAdminHandler(v *validator.Validator, settingsService services.SettingsService, userService services.UserService, tokens *auth.TokenManager) *AdminHandler {
	return &AdminHandler{
		BaseHandler:     NewBaseHandler(v),
		settingsService: settingsService,
		userService:     userService,
		tokens:          tokens,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.Auth(h.tokens), middleware.RequireAdmin())
	{
		admin.GET("/settings", h.GetEventSettings)
		admin.PUT("/settings", h.UpdateEventSettings)
		admin.DELETE("/users/:id", h.DeleteUser)
	}
}

func (h *AdminHandler) GetEventSettings(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	settings, svcErr := h.settingsService.GetEventSettings(c.Request.Context(), db)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) UpdateEventSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	settings, svcErr := h.settingsService.UpdateEventSettings(
		c.Request.Context(), db, h.CurrentUserID(c), &req)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	if svcErr := h.userService.DeleteUser(c.Request.Context(), db, c.Param("id")); svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

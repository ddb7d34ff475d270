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

type UserHandler struct {
	BaseHandler
	userService services.UserService
	tokens      *auth.TokenManager
}

func NewUserHandler(v *validator.Validator, userService services.UserService, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(v),
		userService: userService,
		tokens:      tokens,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", middleware.Auth(h.tokens))
	{
		users.GET("/me", h.GetProfile)
		users.PATCH("/me", h.UpdateProfile)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	user, svcErr := h.userService.GetProfile(c.Request.Context(), db, h.CurrentUserID(c))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	user, svcErr := h.userService.UpdateProfile(c.Request.Context(), db, h.CurrentUserID(c), &req)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, user)
}

package handlers

import (
	"net/http"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/services"
	"gathero_backend/internal/validator"
	"gathero_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(v *validator.Validator, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(v),
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/verify-email", h.VerifyEmail)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	user, svcErr := h.authService.Register(c.Request.Context(), db, &req)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	tokens, svcErr := h.authService.Login(c.Request.Context(), db, &req)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	tokens, svcErr := h.authService.Refresh(c.Request.Context(), db, &req)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	if svcErr := h.authService.Logout(c.Request.Context(), db, req.RefreshToken); svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("token is required"))
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	if svcErr := h.authService.VerifyEmail(c.Request.Context(), db, token); svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

package handlers

import (
	"net/http"
	"strconv"

	"gathero_backend/internal/auth"
	"gathero_backend/internal/dto"
	"gathero_backend/internal/middleware"
	"gathero_backend/internal/services"
	"gathero_backend/internal/validator"
	"gathero_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	BaseHandler
	commentService services.CommentService
	tokens         *auth.TokenManager
}

func NewCommentHandler(v *validator.Validator, commentService services.CommentService, tokens *auth.TokenManager) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    NewBaseHandler(v),
		commentService: commentService,
		tokens:         tokens,
	}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/:id/comments", h.ListComments)

	protected := rg.Group("", middleware.Auth(h.tokens))
	{
		protected.POST("/events/:id/comments", h.CreateComment)
		protected.DELETE("/comments/:id", h.DeleteComment)
	}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	comments, total, svcErr := h.commentService.ListComments(
		c.Request.Context(), db, c.Param("id"), limit, offset)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "total": total})
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	comment, svcErr := h.commentService.CreateComment(
		c.Request.Context(), db, h.CurrentUserID(c), c.Param("id"), &req)
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleAnyError(c, err)
		return
	}

	svcErr := h.commentService.DeleteComment(
		c.Request.Context(), db, h.CurrentUserID(c), h.CurrentRole(c), c.Param("id"))
	if svcErr != nil {
		apperrors.HandleAnyError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"

	"gathero_backend/internal/middleware"
	"gathero_backend/internal/models"
	"gathero_backend/internal/validator"
	"gathero_backend/pkg/apperrors"
	"gathero_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler holds the dependencies every handler shares.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) BaseHandler {
	return BaseHandler{validator: v}
}

// GetDB pulls the connection pool placed on the request context by the
// database middleware.
func (h *BaseHandler) GetDB(c *gin.Context) (*gorm.DB, error) {
	db, ok := c.Request.Context().Value(contextkeys.DBContextKey).(*gorm.DB)
	if !ok || db == nil {
		return nil, errors.New("database not available in request context")
	}
	return db, nil
}

// BindAndValidate binds a JSON body and runs struct validation,
// writing the error response itself on failure.
func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.ErrValidationFailed.WithError(err))
		return false
	}
	return h.validateStruct(c, obj)
}

// BindFormAndValidate binds a multipart/url-encoded form body.
func (h *BaseHandler) BindFormAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		apperrors.HandleError(c, apperrors.ErrValidationFailed.WithError(err))
		return false
	}
	return h.validateStruct(c, obj)
}

// BindQueryAndValidate binds query-string parameters.
func (h *BaseHandler) BindQueryAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		apperrors.HandleError(c, apperrors.ErrValidationFailed.WithError(err))
		return false
	}
	return h.validateStruct(c, obj)
}

func (h *BaseHandler) validateStruct(c *gin.Context, obj interface{}) bool {
	if err := h.validator.Validate(obj); err != nil {
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			apperrors.HandleError(c, apperrors.ValidationError(ve.Errors))
		} else {
			apperrors.HandleError(c, apperrors.ErrValidationFailed.WithError(err))
		}
		return false
	}
	return true
}

// CurrentUserID returns the authenticated caller's id set by the auth
// middleware.
func (h *BaseHandler) CurrentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

// CurrentRole returns the authenticated caller's role.
func (h *BaseHandler) CurrentRole(c *gin.Context) models.UserRole {
	return models.UserRole(c.GetString(middleware.ContextRole))
}

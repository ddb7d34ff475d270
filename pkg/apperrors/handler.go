package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an AppError to the gin response.
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		slog.Error("server error", "code", err.Code, "error", err.Error(), "path", c.Request.URL.Path)
	}
	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}

// HandleAnyError normalizes an arbitrary error into an AppError before
// writing it. Unknown errors become a generic internal error.
func HandleAnyError(c *gin.Context, err error) {
	var appErr *AppError
	if As(err, &appErr) {
		HandleError(c, appErr)
		return
	}
	HandleError(c, InternalError(err))
}

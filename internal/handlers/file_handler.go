package handlers

import (
	"io"
	"net/http"
	"strings"

	"gathero_backend/internal/storage"
	"gathero_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves blobs for the local storage backend, where there
// is no external object store to point URLs at. S3/R2 deployments serve
// media straight from the bucket and never hit this route.
type FileHandler struct {
	store storage.Storage
}

func NewFileHandler(store storage.Storage) *FileHandler {
	return &FileHandler{store: store}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*key", h.ServeFile)
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}

	reader, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}
	defer reader.Close()

	c.Header("Cache-Control", "public, max-age=3600")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

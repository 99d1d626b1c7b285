package handlers

import (
	"io"
	"mime"
	"net/http"

	"casedesk-backend/service"
	"casedesk-backend/storage"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored dispute documents back to their owner
type FileHandler struct {
	files *service.FileService
}

// NewFileHandler creates a new file handler
func NewFileHandler(files *service.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// DownloadFile handles GET /storage/:user_id/:filename
func (h *FileHandler) DownloadFile(c *gin.Context) {
	rc, name, err := h.files.OpenDocument(c.Request.Context(), currentUserID(c), c.Param("user_id"), c.Param("filename"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Header("Content-Type", storage.ContentType(name))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		_ = c.Error(err)
	}
}

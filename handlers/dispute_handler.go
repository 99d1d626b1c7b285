package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"casedesk-backend/middleware"
	"casedesk-backend/models"
	"casedesk-backend/service"

	"github.com/gin-gonic/gin"
)

// DisputeHandler handles HTTP requests for disputes and their documents
type DisputeHandler struct {
	disputes *service.DisputeService
	files    *service.FileService
}

// NewDisputeHandler creates a new dispute handler
func NewDisputeHandler(disputes *service.DisputeService, files *service.FileService) *DisputeHandler {
	return &DisputeHandler{disputes: disputes, files: files}
}

// CreateDisputeRequest represents the request body for creating a dispute
type CreateDisputeRequest struct {
	Title  *string  `json:"title" binding:"required"`
	Amount *float64 `json:"amount" binding:"required"`
}

// UpdateDisputeRequest represents the request body for a partial dispute update
type UpdateDisputeRequest struct {
	Title  *string               `json:"title"`
	Status *models.DisputeStatus `json:"status" binding:"omitempty,oneof=open pending closed"`
	Amount *float64              `json:"amount"`
}

// ListDisputes handles GET /disputes
func (h *DisputeHandler) ListDisputes(c *gin.Context) {
	list, err := h.disputes.ListDisputes(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetDispute handles GET /disputes/:id
func (h *DisputeHandler) GetDispute(c *gin.Context) {
	d, err := h.disputes.GetDispute(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// CreateDispute handles POST /disputes
func (h *DisputeHandler) CreateDispute(c *gin.Context) {
	var req CreateDisputeRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.disputes.CreateDispute(c.Request.Context(), service.CreateDisputeRequest{
		UserID: currentUserID(c),
		Title:  *req.Title,
		Amount: *req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UpdateDispute handles PUT /disputes/:id
func (h *DisputeHandler) UpdateDispute(c *gin.Context) {
	var req UpdateDisputeRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.disputes.UpdateDispute(c.Request.Context(), service.UpdateDisputeRequest{
		UserID:    currentUserID(c),
		DisputeID: c.Param("id"),
		Update: models.DisputeUpdate{
			Title:  req.Title,
			Status: req.Status,
			Amount: req.Amount,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DeleteDispute handles DELETE /disputes/:id
func (h *DisputeHandler) DeleteDispute(c *gin.Context) {
	if err := h.disputes.DeleteDispute(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadDocuments handles POST /disputes/:id/documents (multipart field "files")
func (h *DisputeHandler) UploadDocuments(c *gin.Context) {
	var headers []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		headers = form.File["files"]
	} else if !errors.Is(err, http.ErrNotMultipart) {
		middleware.Abort(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed multipart body")
		return
	}

	uploads := make([]service.FileUpload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, service.FileUpload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open:     func() (io.ReadCloser, error) { return fh.Open() },
		})
	}

	docs, err := h.files.UploadDocuments(c.Request.Context(), service.UploadDocumentsRequest{
		UserID:    currentUserID(c),
		DisputeID: c.Param("id"),
		Files:     uploads,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

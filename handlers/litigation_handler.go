package handlers

import (
	"net/http"

	"casedesk-backend/models"
	"casedesk-backend/service"

	"github.com/gin-gonic/gin"
)

// LitigationHandler handles HTTP requests for litigation cases
type LitigationHandler struct {
	cases *service.LitigationService
}

func NewLitigationHandler(cases *service.LitigationService) *LitigationHandler {
	return &LitigationHandler{cases: cases}
}

// LitigationCaseInsert is one case of a bulk upload
type LitigationCaseInsert struct {
	DocketNumber *string                 `json:"docket_number" binding:"required"`
	CaseName     *string                 `json:"case_name" binding:"required"`
	Status       models.LitigationStatus `json:"status" binding:"omitempty,oneof=draft filed closed"`
	Amount       *float64                `json:"amount" binding:"required"`
}

// BulkInsertRequest represents the request body for POST /litigation-cases/bulk
type BulkInsertRequest struct {
	Cases []LitigationCaseInsert `json:"cases" binding:"required,dive"`
}

// ListCases handles GET /litigation-cases
func (h *LitigationHandler) ListCases(c *gin.Context) {
	list, err := h.cases.ListCases(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// BulkInsert handles POST /litigation-cases/bulk
func (h *LitigationHandler) BulkInsert(c *gin.Context) {
	var req BulkInsertRequest
	if !bindJSON(c, &req) {
		return
	}
	inputs := make([]service.LitigationCaseInput, 0, len(req.Cases))
	for _, in := range req.Cases {
		inputs = append(inputs, service.LitigationCaseInput{
			DocketNumber: *in.DocketNumber,
			CaseName:     *in.CaseName,
			Status:       in.Status,
			Amount:       *in.Amount,
		})
	}
	created, err := h.cases.BulkCreate(c.Request.Context(), service.BulkCreateRequest{
		UserID: currentUserID(c),
		Cases:  inputs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// DeleteCase handles DELETE /litigation-cases/:id
func (h *LitigationHandler) DeleteCase(c *gin.Context) {
	if err := h.cases.DeleteCase(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

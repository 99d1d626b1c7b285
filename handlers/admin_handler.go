package handlers

import (
	"net/http"

	"casedesk-backend/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin panel
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// PermissionUpdateRequest replaces a user's permission set
type PermissionUpdateRequest struct {
	UserID      *string  `json:"user_id" binding:"required"`
	Permissions []string `json:"permissions" binding:"required"`
}

// AccessToggleRequest enables or disables a user
type AccessToggleRequest struct {
	UserID    *string `json:"user_id" binding:"required"`
	IsEnabled *bool   `json:"is_enabled" binding:"required"`
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdatePermissions handles POST /admin/permissions
func (h *AdminHandler) UpdatePermissions(c *gin.Context) {
	var req PermissionUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.admin.SetPermissions(c.Request.Context(), *req.UserID, req.Permissions); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleAccess handles POST /admin/access
func (h *AdminHandler) ToggleAccess(c *gin.Context) {
	var req AccessToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.admin.SetAccess(c.Request.Context(), *req.UserID, *req.IsEnabled); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

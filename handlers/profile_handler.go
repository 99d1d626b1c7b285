package handlers

import (
	"net/http"

	"casedesk-backend/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the caller's own profile and alert settings
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// UpdateProfileRequest is a partial profile update; an empty avatar_url clears it.
// omitempty does not skip a non-nil pointer to "", hence the eq= alternative.
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,http_url|eq="`
}

// UpdateAlertsRequest is a partial alert settings update
type UpdateAlertsRequest struct {
	EmailAlerts *bool `json:"email_alerts"`
	SMSAlerts   *bool `json:"sms_alerts"`
}

// GetProfile handles GET /me/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profiles.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfile handles PUT /me/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.profiles.UpdateProfile(c.Request.Context(), service.UpdateProfileRequest{
		UserID:    currentUserID(c),
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetAlerts handles GET /me/alerts
func (h *ProfileHandler) GetAlerts(c *gin.Context) {
	a, err := h.profiles.GetAlerts(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// UpdateAlerts handles PUT /me/alerts
func (h *ProfileHandler) UpdateAlerts(c *gin.Context) {
	var req UpdateAlertsRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.profiles.UpdateAlerts(c.Request.Context(), service.UpdateAlertsRequest{
		UserID:      currentUserID(c),
		EmailAlerts: req.EmailAlerts,
		SMSAlerts:   req.SMSAlerts,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

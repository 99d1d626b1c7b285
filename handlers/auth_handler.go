package handlers

import (
	"net/http"

	"casedesk-backend/middleware"
	"casedesk-backend/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for account sessions
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUpRequest represents the request body for creating an account.
// Pointer fields must be present but may be empty.
type SignUpRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password *string `json:"password" binding:"required"`
	FullName *string `json:"full_name" binding:"required"`
}

// SignInRequest represents the request body for signing in
type SignInRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password *string `json:"password" binding:"required"`
}

// RefreshRequest represents the request body for exchanging a refresh token
type RefreshRequest struct {
	RefreshToken *string `json:"refresh_token" binding:"required"`
}

// SignUp handles POST /auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.auth.SignUp(c.Request.Context(), service.SignUpRequest{
		Email:    req.Email,
		Password: *req.Password,
		FullName: *req.FullName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Tokens)
}

// SignIn handles POST /auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.auth.SignIn(c.Request.Context(), service.SignInRequest{
		Email:    req.Email,
		Password: *req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Tokens)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.auth.Refresh(c.Request.Context(), *req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Tokens)
}

// SignOut handles POST /auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		middleware.Abort(c, http.StatusUnauthorized, "MISSING_AUTH_HEADER", "Missing Authorization header")
		return
	}
	h.auth.SignOut(c.Request.Context(), session)
	c.Status(http.StatusNoContent)
}

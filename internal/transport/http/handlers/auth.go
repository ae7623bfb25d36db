package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quantifun/uxrp/internal/core/domain"
	"github.com/quantifun/uxrp/internal/transport/http/middleware"
	"github.com/quantifun/uxrp/internal/usecase"
)

// AuthHandler exposes the boundary operations over HTTP.
type AuthHandler struct {
	auth *usecase.AuthService
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes binds the auth endpoints. Endpoints that require an
// authenticated principal are guarded by the supplied middleware.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, requirePrincipal gin.HandlerFunc) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/verify", h.Verify)
	r.POST("/test", requirePrincipal, h.Test)
	r.POST("/logout", requirePrincipal, h.Logout)
}

// Register creates a new account for the supplied email.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid registration payload"})
		return
	}

	if err := h.auth.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: domain.ErrUserExists, Status: http.StatusConflict, Message: "user already exists"},
			{Err: usecase.ErrPasswordPolicyViolation, Status: http.StatusBadRequest, Message: "password does not meet requirements"},
		}, http.StatusInternalServerError, "failed to register user")
		return
	}

	c.JSON(http.StatusOK, RegisterResponse{})
}

// Login authenticates the email+password pair and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid login payload"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: domain.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"},
			{Err: domain.ErrUserUnverified, Status: http.StatusForbidden, Message: "email not verified"},
		}, http.StatusInternalServerError, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// Verify redeems an email verification token.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid verification payload"})
		return
	}

	if err := h.auth.Verify(c.Request.Context(), req.Token); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: domain.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid verification token"},
		}, http.StatusInternalServerError, "failed to verify email")
		return
	}

	c.JSON(http.StatusOK, VerifyResponse{})
}

// Test echoes the authenticated principal id, proving resolution is wired.
func (h *AuthHandler) Test(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "principal missing from context"})
		return
	}

	c.JSON(http.StatusOK, TestResponse{
		PrincipalID: h.auth.Test(c.Request.Context(), principal),
	})
}

// Logout removes the session backing the presented bearer token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.BearerTokenFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "token missing from context"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to log out")
		return
	}

	c.Status(http.StatusNoContent)
}

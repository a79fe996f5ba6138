// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"advisor-api/internal/middleware"
	"advisor-api/internal/services"
	"advisor-api/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

const MsgLoggedOut = "Logged out successfully"

// AuthHandler handles authentication HTTP endpoints.
type AuthHandler struct {
	service *services.AuthService
	cookies CookiePolicy
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService, cookies CookiePolicy) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed bodies fall through to field validation.
		req = httpdto.RegisterRequest{}
	}

	res, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.cookies.Set(c, res.Token)
	c.JSON(http.StatusCreated, toAuthResponse(res))
}

// Login handles user authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = httpdto.LoginRequest{}
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.cookies.Set(c, res.Token)
	c.JSON(http.StatusOK, toAuthResponse(res))
}

// Logout clears the auth cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}

	h.cookies.Clear(c)
	c.JSON(http.StatusOK, httpdto.NewMessageResponse(MsgLoggedOut))
}

// Me returns the claims of the authenticated session.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := services.ClaimsFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(middleware.MsgNotAuthenticated))
		return
	}

	dto := httpdto.SessionUserDTO{
		UserID:   claims.UserID,
		Email:    claims.Email,
		FullName: claims.FullName,
	}
	if claims.IssuedAt != nil {
		dto.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		dto.ExpiresAt = claims.ExpiresAt.Unix()
	}
	c.JSON(http.StatusOK, httpdto.MeResponse{User: dto})
}

func toAuthResponse(res services.AuthResponse) httpdto.AuthResponse {
	return httpdto.AuthResponse{
		User: httpdto.AuthUserDTO{
			ID:    res.User.ID,
			Email: res.User.Email,
		},
	}
}

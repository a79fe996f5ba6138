package middleware

import (
	"context"
	"net/http"

	"advisor-api/internal/services"
	"advisor-api/internal/transport/httpdto"
	"advisor-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	MsgNotAuthenticated = "Not authenticated"
	MsgInvalidToken     = "Invalid or expired token"
)

// ClaimsKey is the gin context key holding the verified services.SessionClaims.
const ClaimsKey = "session_claims"

// AuthMiddleware admits requests carrying a valid auth cookie. Identity is
// trusted from the token signature alone; the user store is not consulted.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(httpdto.AuthCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewErrorResponse(MsgNotAuthenticated))
			return
		}

		claims, err := service.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewErrorResponse(MsgInvalidToken))
			return
		}

		ctx := services.WithClaims(c.Request.Context(), claims)
		ctx = context.WithValue(ctx, logger.UserIdKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

package handler

import (
	"net/http"
	"time"

	"advisor-api/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthCookieMaxAge outlives the token it carries; an expired token inside a
// live cookie is rejected by the session guard.
const AuthCookieMaxAge = 7 * 24 * time.Hour

// CookiePolicy sets and clears the auth cookie for every flow that issues or
// discards a session.
type CookiePolicy struct {
	Secure bool
}

func NewCookiePolicy(production bool) CookiePolicy {
	return CookiePolicy{Secure: production}
}

func (p CookiePolicy) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(httpdto.AuthCookieName, token, int(AuthCookieMaxAge.Seconds()), "/", "", p.Secure, true)
}

func (p CookiePolicy) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(httpdto.AuthCookieName, "", -1, "/", "", p.Secure, true)
}

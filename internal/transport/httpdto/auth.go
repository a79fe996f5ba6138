package httpdto

// AuthCookieName is the cookie carrying the session token.
const AuthCookieName = "auth_token"

// RegisterRequest is used for POST /api/register
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is used for POST /api/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUserDTO is the user view returned by register and login.
type AuthUserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned after successful registration or login.
// The token itself travels only in the cookie.
type AuthResponse struct {
	User AuthUserDTO `json:"user"`
}

// SessionUserDTO mirrors the decoded session token claims.
type SessionUserDTO struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

// MeResponse is returned by GET /api/me
type MeResponse struct {
	User SessionUserDTO `json:"user"`
}

package helpers

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ClaimsKey = "user"

type Claims struct {
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

func (c *Claims) IsHost() bool {
	return c.Role == "host"
}

func (c *Claims) GetSafeRole() string {
	if c.Role == "" {
		return "guest"
	}
	return c.Role
}

// CurrentClaims returns the claims the auth middleware stored on the request.
func CurrentClaims(c *gin.Context) (*Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

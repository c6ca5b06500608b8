package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by access tokens. Tokens are issued by the auth service;
// this API only validates them.
type Claims struct {
	MemberID string `json:"member_id"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// Auth is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the
// Authorization header and sets the member identity in the context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, secret)
		if err != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err})
			c.Abort()
			return
		}

		c.Set("memberID", claims.MemberID)
		c.Set("nickname", claims.Nickname)
		c.Next()
	}
}

// OptionalAuth sets the member identity when a valid token is present and
// lets anonymous requests through. Read endpoints use it so viewer flags
// can be served to logged-in members without requiring login to read.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, err := claimsFromHeader(c, secret)
		if err != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err})
			c.Abort()
			return
		}

		c.Set("memberID", claims.MemberID)
		c.Set("nickname", claims.Nickname)
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, secret string) (*Claims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "missing authorization header"
	}

	// Extract token (format: "Bearer <token>")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "invalid authorization header format"
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.MemberID == "" {
		return nil, "invalid token"
	}
	return claims, ""
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/legalconnect/schedule-service/internal/config"
	"github.com/legalconnect/schedule-service/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"

	RoleCitizen = "citizen"
	RoleLawyer  = "lawyer"
)

func abortUnauthorized(c *gin.Context, code, message string) {
	httperr.Unauthorized(c, code, message)
	c.Abort()
}

// AuthMiddleware validates the bearer token minted by the platform's auth
// service and exposes the actor's id and role to handlers.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header", "an Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header", "expected a bearer token")
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token", "the token is invalid or expired")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims", "the token carries no readable claims")
			return
		}

		userID, ok1 := claims["sub"].(float64)
		role, ok2 := claims["role"].(string)
		if !ok1 || !ok2 || (role != RoleCitizen && role != RoleLawyer) {
			abortUnauthorized(c, "invalid_token_payload", "the token is missing the subject or role claim")
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole guards role-specific endpoints; the fine-grained actor
// checks still live inside the usecases.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != role {
			httperr.Forbidden(c, "insufficient_role", "this endpoint is reserved for another role")
			c.Abort()
			return
		}
		c.Next()
	}
}

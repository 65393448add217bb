package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-admin-api/internal/models"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
	"github.com/noah-isme/academy-admin-api/pkg/logger"
	"github.com/noah-isme/academy-admin-api/pkg/response"
)

// ContextSessionKey is the gin context key storing the session claims.
const ContextSessionKey = "currentSession"

// LoginRedirect is where unauthenticated callers are sent.
const LoginRedirect = "/"

type sessionAuthorizer interface {
	Authorize(ctx context.Context, token string) (*models.SessionClaims, error)
}

// SessionGuard protects admin routes by requiring a token whose session flag
// is still set. Rejections carry the login redirect in the response meta.
func SessionGuard(auth sessionAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, appErrors.ErrUnauthorized)
			return
		}

		claims, err := auth.Authorize(c.Request.Context(), token)
		if err != nil {
			reject(c, err)
			return
		}

		c.Set(ContextSessionKey, claims)
		c.Set(logger.SessionKey, claims.SessionID())
		c.Next()
	}
}

// BearerToken returns the token of the Authorization header, or "".
func BearerToken(c *gin.Context) string {
	token, _ := bearerToken(c.GetHeader("Authorization"))
	return token
}

// SessionID returns the id of the session admitted by SessionGuard.
func SessionID(c *gin.Context) string {
	if claims := SessionClaims(c); claims != nil {
		return claims.SessionID()
	}
	return ""
}

// SessionClaims returns the claims admitted by SessionGuard, or nil.
func SessionClaims(c *gin.Context) *models.SessionClaims {
	value, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*models.SessionClaims)
	return claims
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func reject(c *gin.Context, err error) {
	response.Error(c, err, map[string]interface{}{"redirect": LoginRedirect})
	c.Abort()
}

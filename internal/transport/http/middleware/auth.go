package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quantifun/uxrp/internal/core/domain"
	"github.com/quantifun/uxrp/internal/core/port"
)

const (
	principalKey   = "principal"
	bearerTokenKey = "bearer_token"
)

// ErrorResponse matches the handlers.ErrorResponse structure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RequirePrincipal resolves the inbound request to a principal before the
// guarded handler runs. Resolution failure maps to 401; anything else the
// resolver reports is an internal failure, never an authentication verdict.
func RequirePrincipal(resolver port.PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := resolver.Resolve(c.Request.Context(), c.Request)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					ErrorResponse{Error: "not authenticated"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				ErrorResponse{Error: "authentication failed"})
			return
		}

		c.Set(principalKey, principal)
		if token, ok := tokenFromHeader(c.Request); ok {
			c.Set(bearerTokenKey, token)
		}

		c.Next()
	}
}

// PrincipalFromContext retrieves the resolved principal set by RequirePrincipal.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}, false
	}

	principal, ok := value.(domain.Principal)
	return principal, ok
}

// BearerTokenFromContext retrieves the raw bearer token of the resolved session.
func BearerTokenFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(bearerTokenKey)
	if !exists {
		return "", false
	}

	token, ok := value.(string)
	return token, ok
}

func tokenFromHeader(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"account-api/internal/service"
)

const authClaimsKey = "auth_claims"

// RequireAuth exige un bearer token válido y no revocado.
// Guarda los claims verificados en el contexto de gin.
func RequireAuth(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := service.TokenFromAuthorization(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: "No authorization token was found"})
			c.Abort()
			return
		}
		claims, err := authSvc.Verify(token)
		if err != nil {
			writeVerifyError(c, err)
			c.Abort()
			return
		}
		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// PermissiveAuth deja pasar requests sin token; un token presente pero
// inválido sigue rechazando.
func PermissiveAuth(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := service.TokenFromAuthorization(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		claims, err := authSvc.Verify(token)
		if err != nil {
			writeVerifyError(c, err)
			c.Abort()
			return
		}
		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene los claims verificados desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

func writeVerifyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: "jwt expired"})
	case errors.Is(err, service.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: "The token has been revoked"})
	default:
		c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: "invalid token"})
	}
}

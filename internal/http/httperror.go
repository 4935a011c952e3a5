package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account-api/internal/repository"
	"account-api/internal/service"
)

// httpError es el cuerpo opaco {name, message} que ve el cliente.
type httpError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Mensaje uniforme para cualquier fallo de credenciales.
const invalidCredentialsMessage = "Invalid username or password"

// writeError mapea errores tipados del dominio a status HTTP.
// Lo no mapeado termina en 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrIdentityMissing):
		c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: "User identity missing"})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: invalidCredentialsMessage})
	case errors.Is(err, service.ErrJTIMissing):
		c.JSON(http.StatusBadRequest, httpError{Name: "BadRequestError", Message: "JTI not present"})
	case errors.Is(err, service.ErrUnknownMedium):
		c.JSON(http.StatusBadRequest, httpError{Name: "BadRequestError", Message: "Unknown validation medium"})
	case errors.Is(err, service.ErrValidationNotSent):
		c.JSON(http.StatusBadRequest, httpError{Name: "BadRequestError", Message: "No validation token issued"})
	case errors.Is(err, service.ErrValidationToken):
		c.JSON(http.StatusBadRequest, httpError{Name: "BadRequestError", Message: "Invalid token"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, httpError{Name: "UnprocessableEntityError", Message: err.Error()})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusUnprocessableEntity, httpError{Name: "UnprocessableEntityError", Message: err.Error()})
	case errors.Is(err, service.ErrEmailSendFailure):
		c.JSON(http.StatusServiceUnavailable, httpError{Name: "ServiceUnavailableError", Message: "Email delivery unavailable"})
	default:
		if logger != nil {
			logger.Error("unhandled error", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, httpError{Name: "InternalServerError", Message: "Internal server error"})
	}
}

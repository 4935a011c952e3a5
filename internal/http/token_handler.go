package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account-api/internal/domain"
	"account-api/internal/service"
)

// TokenHandler mantiene dependencias para endpoints de tokens.
type TokenHandler struct {
	logger *zap.Logger
	auth   *service.AuthService
}

// NewTokenHandler crea una instancia de TokenHandler con dependencias necesarias.
func NewTokenHandler(logger *zap.Logger, auth *service.AuthService) *TokenHandler {
	return &TokenHandler{
		logger: logger,
		auth:   auth,
	}
}

// CreateToken maneja POST /token (login).
func (h *TokenHandler) CreateToken(c *gin.Context) {
	var req struct {
		ID       string `json:"_id"`
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, httpError{Name: "BadRequestError", Message: "invalid request body"})
		return
	}

	identity := domain.IdentityFromInput(req.ID, req.Email, req.Nickname)
	token, user, err := h.auth.Login(c.Request.Context(), identity, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "payload": user})
}

// RefreshToken maneja PUT /token: revoca el token presentado y emite
// uno nuevo a partir de sus claims.
func (h *TokenHandler) RefreshToken(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: "No authorization token was found"})
		return
	}

	token, err := h.auth.Reissue(claims)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "payload": claims})
}

// DeleteToken maneja DELETE /token: revoca sin reemitir.
func (h *TokenHandler) DeleteToken(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: "No authorization token was found"})
		return
	}

	if err := h.auth.Revoke(claims); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

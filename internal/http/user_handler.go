package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account-api/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger     *zap.Logger
	users      *service.UserService
	validation *service.ValidationService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, users *service.UserService, validation *service.ValidationService) *UserHandler {
	return &UserHandler{
		logger:     logger,
		users:      users,
		validation: validation,
	}
}

// CreateUser maneja POST /user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, httpError{Name: "BadRequestError", Message: "invalid request body"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payload": user})
}

// UpdateUser maneja PATCH /user. Campos ausentes quedan sin tocar.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: "No authorization token was found"})
		return
	}

	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, httpError{Name: "BadRequestError", Message: "invalid request body"})
		return
	}

	user, err := h.users.Update(c.Request.Context(), claims.UserID, service.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payload": user})
}

// DeleteUser maneja DELETE /user. Borra la cuenta del caller.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: "No authorization token was found"})
		return
	}

	user, err := h.users.Delete(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payload": user})
}

// SendValidation maneja POST /user/verify/email/send.
func (h *UserHandler) SendValidation(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpError{Name: "UnauthorizedError", Message: "No authorization token was found"})
		return
	}

	if err := h.validation.Send(c.Request.Context(), claims.UserID); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "validation_sent"})
}

// ReceiveValidation maneja GET /user/verify/:medium/receive.
func (h *UserHandler) ReceiveValidation(c *gin.Context) {
	medium := c.Param("medium")
	id := c.Query("id")
	token := c.Query("token")
	if id == "" || token == "" {
		c.JSON(http.StatusBadRequest, httpError{Name: "BadRequestError", Message: "id and token are required"})
		return
	}

	user, err := h.validation.Receive(c.Request.Context(), id, medium, token)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payload": user})
}

package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account-api/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	authSvc *service.AuthService,
	userH *UserHandler,
	tokenH *TokenHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	requireAuth := RequireAuth(authSvc)

	user := r.Group("/user")
	user.POST("", userH.CreateUser)
	user.PATCH("", requireAuth, userH.UpdateUser)
	user.DELETE("", requireAuth, userH.DeleteUser)
	user.POST("/verify/email/send", requireAuth, userH.SendValidation)
	user.GET("/verify/:medium/receive", requireAuth, userH.ReceiveValidation)

	token := r.Group("/token")
	token.POST("", tokenH.CreateToken)
	token.PUT("", requireAuth, tokenH.RefreshToken)
	token.DELETE("", requireAuth, tokenH.DeleteToken)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

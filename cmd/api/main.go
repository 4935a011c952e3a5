package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"account-api/internal/config"
	"account-api/internal/db"
	"account-api/internal/email"
	apihttp "account-api/internal/http"
	"account-api/internal/repository"
	"account-api/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var revocationStore service.RevocationStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, falling back to in-memory revocation store", zap.Error(err))
		} else {
			revocationStore = service.NewRedisRevocationStore(redisClient)
		}
		cancel()
	}
	if revocationStore == nil {
		logger.Warn("using in-memory revocation store; revocations do not survive restarts")
		revocationStore = service.NewMemoryRevocationStore()
	}

	tokenSvc := service.NewTokenService(
		cfg.TokenSecret,
		cfg.TokenIssuer,
		cfg.TokenAudience,
		time.Duration(cfg.TokenTTLSecs)*time.Second,
	)
	authSvc := service.NewAuthService(logger, userRepo, tokenSvc, revocationStore)
	userSvc := service.NewUserService(logger, userRepo)
	validationSvc := service.NewValidationService(logger, userRepo, emailSender, cfg.PublicBaseURL)

	userHandler := apihttp.NewUserHandler(logger, userSvc, validationSvc)
	tokenHandler := apihttp.NewTokenHandler(logger, authSvc)
	router := apihttp.NewRouter(logger, authSvc, userHandler, tokenHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

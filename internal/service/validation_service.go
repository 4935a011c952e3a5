package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"account-api/internal/domain"
	"account-api/internal/email"
	"account-api/internal/repository"
)

var (
	ErrUnknownMedium     = errors.New("unknown validation medium")
	ErrValidationNotSent = errors.New("no validation token issued")
	ErrValidationToken   = errors.New("invalid token")
	ErrEmailSendFailure  = errors.New("email send failed")
)

// ValidationService maneja el flujo de validación de correo:
// un token de un solo uso por usuario, enviado por link y comparado
// contra el valor recibido.
type ValidationService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	sender  email.Sender
	baseURL string
}

func NewValidationService(logger *zap.Logger, users repository.UserRepository, sender email.Sender, baseURL string) *ValidationService {
	return &ValidationService{
		logger:  logger,
		users:   users,
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Send entrega el link de validación al correo del usuario. Reusa el
// token generado en el registro; genera uno nuevo solo si falta.
func (s *ValidationService) Send(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	sent := user.Validation.Email.Sent
	if sent == "" {
		sent = uuid.NewString()
		user.Validation.Email.Sent = sent
		user.UpdatedAt = time.Now().UTC()
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
	}

	link := fmt.Sprintf("%s/user/verify/email/receive?id=%s&token=%s",
		s.baseURL, url.QueryEscape(user.ID), url.QueryEscape(sent))

	if s.sender == nil {
		return ErrEmailSendFailure
	}
	if err := s.sender.SendValidationLink(ctx, user.Email, link); err != nil {
		if s.logger != nil {
			s.logger.Warn("send validation link failed", zap.Error(err), zap.String("email", user.Email))
		}
		return ErrEmailSendFailure
	}
	return nil
}

// Receive compara el token recibido con el enviado y marca el medio
// como validado persistiendo received = sent.
func (s *ValidationService) Receive(ctx context.Context, userID, medium, token string) (domain.User, error) {
	if !domain.IsKnownMedium(medium) {
		return domain.User{}, ErrUnknownMedium
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	sent := user.Validation.Email.Sent
	if sent == "" {
		return domain.User{}, ErrValidationNotSent
	}
	if token != sent {
		return domain.User{}, ErrValidationToken
	}

	user.Validation.Email.Received = sent
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

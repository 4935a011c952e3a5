package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"account-api/internal/domain"
	"account-api/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrValidation   = errors.New("validation failed")
)

// UserService coordina el ciclo de vida de las cuentas de usuario.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
	}
}

type CreateUserInput struct {
	Email    string
	Name     string
	Nickname string
	Password string
}

type UpdateUserInput struct {
	Email    string
	Name     string
	Nickname string
	Password string
}

// Create registra un usuario nuevo. El hash del password y el token
// inicial de validación se calculan acá, antes de tocar el store.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (domain.User, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	nickname := strings.TrimSpace(input.Nickname)
	password := strings.TrimSpace(input.Password)

	if email == "" {
		return domain.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if name == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if nickname == "" {
		return domain.User{}, fmt.Errorf("%w: nickname is required", ErrValidation)
	}
	if password == "" {
		return domain.User{}, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if !domain.IsValidEmail(email) {
		return domain.User{}, fmt.Errorf("%w: %s is not a valid email", ErrValidation, email)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Nickname:     nickname,
		PasswordHash: hash,
		Validation: domain.Validation{
			Email: domain.ValidationToken{Sent: uuid.NewString()},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Update aplica un update parcial: los campos vacíos quedan intactos y
// el password se rehashea solo cuando viene uno nuevo.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if email := normalizeEmail(input.Email); email != "" {
		if !domain.IsValidEmail(email) {
			return domain.User{}, fmt.Errorf("%w: %s is not a valid email", ErrValidation, email)
		}
		user.Email = email
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if nickname := strings.TrimSpace(input.Nickname); nickname != "" {
		user.Nickname = nickname
	}
	if password := strings.TrimSpace(input.Password); password != "" {
		hash, err := HashPassword(password)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// Delete elimina la cuenta y devuelve el registro borrado.
func (s *UserService) Delete(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

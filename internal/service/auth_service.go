package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"account-api/internal/domain"
	"account-api/internal/repository"
)

var (
	ErrIdentityMissing    = errors.New("user identity missing")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrJTIMissing         = errors.New("jti not present")
)

// AuthService orquesta login, verificación y revocación de tokens.
type AuthService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	tokens  *TokenService
	revoked RevocationStore
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, tokens *TokenService, revoked RevocationStore) *AuthService {
	if revoked == nil {
		revoked = NewMemoryRevocationStore()
	}
	return &AuthService{
		logger:  logger,
		users:   users,
		tokens:  tokens,
		revoked: revoked,
	}
}

// Login verifica credenciales y emite un token fresco.
// Usuario desconocido y password incorrecto producen el mismo error
// para no revelar cuál de los dos falló.
func (s *AuthService) Login(ctx context.Context, identity domain.Identity, password string) (string, domain.User, error) {
	if identity.IsZero() {
		return "", domain.User{}, ErrIdentityMissing
	}
	if strings.TrimSpace(password) == "" {
		return "", domain.User{}, ErrInvalidCredentials
	}
	user, err := s.users.GetByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		return "", domain.User{}, err
	}
	if user.PasswordHash == "" || !VerifyPassword(password, user.PasswordHash) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID, user.IsValidated())
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// Verify valida firma, emisor, audiencia y expiración antes de consultar
// la denylist. Un fallo de lectura en la denylist rechaza el token.
func (s *AuthService) Verify(tokenString string) (Claims, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return Claims{}, err
	}
	jti := claims.ID
	if jti == "" {
		return claims, nil
	}
	revoked, err := s.revoked.Exists(jti)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("revocation lookup failed", zap.Error(err))
		}
		return Claims{}, ErrTokenRevoked
	}
	if revoked {
		return Claims{}, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke inserta el jti en la denylist con el TTL fijo del token.
// Un token sin jti no puede revocarse y es un error del cliente.
func (s *AuthService) Revoke(claims Claims) error {
	if strings.TrimSpace(claims.ID) == "" {
		return ErrJTIMissing
	}
	return s.revoked.Put(claims.ID, s.tokens.TTL())
}

// Reissue revoca el token presentado y emite uno nuevo con los mismos
// claims. El flag isValidated se conserva tal cual fue emitido.
func (s *AuthService) Reissue(claims Claims) (string, error) {
	if err := s.Revoke(claims); err != nil {
		return "", err
	}
	return s.tokens.Issue(claims.UserID, claims.IsValidated)
}

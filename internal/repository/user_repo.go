package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"account-api/internal/domain"
)

// ErrDuplicate indica violación de unicidad en email o nickname.
var ErrDuplicate = errors.New("duplicate value for unique field")

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByIdentity(ctx context.Context, identity domain.Identity) (domain.User, error)
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, id string) (domain.User, error)
}

const userColumns = `id, email, name, nickname, password_hash,
		validation_email_sent, validation_email_received, created_at, updated_at`

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, email, name, nickname, password_hash,
			validation_email_sent, validation_email_received, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Nickname,
		user.PasswordHash,
		user.Validation.Email.Sent,
		user.Validation.Email.Received,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return wrapUniqueViolation(err)
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.getByColumn(ctx, "id", id)
}

func (r *PgUserRepository) GetByIdentity(ctx context.Context, identity domain.Identity) (domain.User, error) {
	switch identity.Kind {
	case domain.IdentityByID:
		return r.getByColumn(ctx, "id", identity.Value)
	case domain.IdentityByEmail:
		return r.getByColumn(ctx, "email", identity.Value)
	case domain.IdentityByNickname:
		return r.getByColumn(ctx, "nickname", identity.Value)
	default:
		return domain.User{}, pgx.ErrNoRows
	}
}

func (r *PgUserRepository) Update(ctx context.Context, user domain.User) error {
	const query = `
		UPDATE users
		SET email = $2, name = $3, nickname = $4, password_hash = $5,
			validation_email_sent = $6, validation_email_received = $7, updated_at = $8
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Nickname,
		user.PasswordHash,
		user.Validation.Email.Sent,
		user.Validation.Email.Received,
		user.UpdatedAt,
	)
	if err != nil {
		return wrapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgUserRepository) Delete(ctx context.Context, id string) (domain.User, error) {
	query := fmt.Sprintf(`DELETE FROM users WHERE id = $1 RETURNING %s`, userColumns)
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) getByColumn(ctx context.Context, column, value string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)
	return r.scanUser(r.pool.QueryRow(ctx, query, value))
}

func (r *PgUserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Nickname,
		&u.PasswordHash,
		&u.Validation.Email.Sent,
		&u.Validation.Email.Received,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func wrapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raihansp/wishwell/internal/domain/entity"
	"github.com/raihansp/wishwell/internal/domain/repository"
)

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return repository.ErrConflict
		case pgFKViolation:
			return repository.ErrReferenced
		}
	}
	return err
}

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, a.Email, a.Username, a.PasswordHash)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		// Report which unique constraint fired so a registration that
		// loses a race still names the colliding field.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return repository.ErrUsernameTaken
			}
			return repository.ErrEmailTaken
		}
		return mapPgError(err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.getBy(ctx, "id", id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.getBy(ctx, "email", email)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	return r.getBy(ctx, "username", username)
}

func (r *AccountRepository) getBy(ctx context.Context, column, value string) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM accounts
		WHERE `+column+` = $1
	`, value)

	if err := row.Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) ListByEmails(ctx context.Context, emails []string) ([]*entity.Account, error) {
	return r.listBy(ctx, "email", emails)
}

func (r *AccountRepository) ListByUsernames(ctx context.Context, usernames []string) ([]*entity.Account, error) {
	return r.listBy(ctx, "username", usernames)
}

func (r *AccountRepository) listBy(ctx context.Context, column string, values []string) ([]*entity.Account, error) {
	if len(values) == 0 {
		return []*entity.Account{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM accounts
		WHERE `+column+` = ANY($1)
	`, values)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Account, 0, len(values))
	for rows.Next() {
		a := &entity.Account{}
		if err := rows.Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET password_hash = $1, updated_at = $2
		WHERE id = $3
	`, passwordHash, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

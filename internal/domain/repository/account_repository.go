package repository

import (
	"context"

	"github.com/raihansp/wishwell/internal/domain/entity"
)

// AccountRepository defines the interface for account-related database operations.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)
	ListByEmails(ctx context.Context, emails []string) ([]*entity.Account, error)
	ListByUsernames(ctx context.Context, usernames []string) ([]*entity.Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

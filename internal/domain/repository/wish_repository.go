package repository

import (
	"context"

	"github.com/raihansp/wishwell/internal/domain/entity"
)

// WishRepository defines catalog persistence. Deleting an entry that is
// still referenced by any wishlist membership must fail with
// ErrReferenced; the catalog never cascades into memberships.
type WishRepository interface {
	Create(ctx context.Context, w *entity.Wish) error
	GetByID(ctx context.Context, id string) (*entity.Wish, error)
	GetByName(ctx context.Context, name string) (*entity.Wish, error)
	List(ctx context.Context) ([]*entity.Wish, error)
	Update(ctx context.Context, w *entity.Wish) error
	Delete(ctx context.Context, id string) error
}

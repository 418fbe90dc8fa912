package repository

import (
	"context"

	"github.com/raihansp/wishwell/internal/domain/entity"
)

// WishListRepository persists the wishlist aggregate: the event row,
// its ordered membership and its viewer set.
//
// AppendWish must be atomic per aggregate so that two concurrent
// appends both survive. RemoveWish removes the earliest-inserted
// membership entry for the wish and reports whether one was removed.
// Delete must refuse a wishlist with non-empty membership with
// ErrNotEmpty.
type WishListRepository interface {
	Create(ctx context.Context, wl *entity.WishList) error
	GetByID(ctx context.Context, id string) (*entity.WishList, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.WishList, error)
	ListByViewer(ctx context.Context, accountID string) ([]*entity.WishList, error)
	AppendWish(ctx context.Context, wishlistID, wishID string) error
	RemoveWish(ctx context.Context, wishlistID, wishID string) (bool, error)
	Delete(ctx context.Context, id string) error
	AddViewers(ctx context.Context, wishlistID string, accountIDs []string) error
	RemoveViewer(ctx context.Context, wishlistID, accountID string) error
	CountMembershipsByWish(ctx context.Context, wishID string) (int, error)
}

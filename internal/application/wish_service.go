package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/raihansp/wishwell/internal/domain/entity"
	repo "github.com/raihansp/wishwell/internal/domain/repository"
)

// WishService manages the shared wish catalog. Entries are ownerless;
// any wishlist may reference them.
type WishService struct {
	Wishes    repo.WishRepository
	WishLists repo.WishListRepository
	Logger    *logrus.Logger
}

func NewWishService(wishes repo.WishRepository, wishlists repo.WishListRepository, logger *logrus.Logger) *WishService {
	return &WishService{Wishes: wishes, WishLists: wishlists, Logger: logger}
}

// Add creates a catalog entry with a server-assigned timestamp.
func (s *WishService) Add(ctx context.Context, name, description string) (*entity.Wish, error) {
	w := &entity.Wish{Name: strings.TrimSpace(name), Description: description}
	if !w.Validate() {
		return nil, ErrInvalidWish
	}
	if err := s.Wishes.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WishService) Get(ctx context.Context, id string) (*entity.Wish, error) {
	w, err := s.Wishes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *WishService) List(ctx context.Context) ([]*entity.Wish, error) {
	return s.Wishes.List(ctx)
}

// Update replaces the mutable fields; id and timestamp are unchanged.
func (s *WishService) Update(ctx context.Context, id, name, description string) (*entity.Wish, error) {
	w, err := s.Wishes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	w.Name = strings.TrimSpace(name)
	w.Description = description
	if !w.Validate() {
		return nil, ErrInvalidWish
	}
	if err := s.Wishes.Update(ctx, w); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

// Remove deletes a catalog entry. The caller must detach the wish from
// every wishlist first; while a membership still references it the
// removal fails with ErrReferencedEntity instead of cascading.
func (s *WishService) Remove(ctx context.Context, id string) error {
	if _, err := s.Wishes.GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	n, err := s.WishLists.CountMembershipsByWish(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrReferencedEntity
	}
	if err := s.Wishes.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repo.ErrReferenced):
			// A membership was appended between the count and the delete;
			// the FK constraint rejects the race.
			return ErrReferencedEntity
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("wish_id", id).Info("wish removed from catalog")
	}
	return nil
}

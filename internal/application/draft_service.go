package application

import (
	"context"
	"errors"
	"strings"
	"time"

	repo "github.com/raihansp/wishwell/internal/domain/repository"

	"github.com/raihansp/wishwell/internal/domain/entity"
)

// DraftService is the staging area: an ordered, session-scoped
// sequence of candidate wishes accumulated before a wishlist is
// created. Drafts are copies; staging never touches catalog state.
type DraftService struct {
	Drafts repo.DraftStore
	Wishes repo.WishRepository
}

func NewDraftService(drafts repo.DraftStore, wishes repo.WishRepository) *DraftService {
	return &DraftService{Drafts: drafts, Wishes: wishes}
}

// StageExisting appends a copy of a catalog wish to the session draft.
// Staging the same wish twice yields two entries.
func (s *DraftService) StageExisting(ctx context.Context, sessionID, wishID string) (entity.DraftWish, error) {
	w, err := s.Wishes.GetByID(ctx, wishID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.DraftWish{}, ErrNotFound
		}
		return entity.DraftWish{}, err
	}
	d := entity.CopyOf(w)
	if err := s.Drafts.Append(ctx, sessionID, d); err != nil {
		return entity.DraftWish{}, err
	}
	return d, nil
}

// StageNew appends a wish that is not yet in the catalog; it is
// persisted only when the draft is committed.
func (s *DraftService) StageNew(ctx context.Context, sessionID, name, description string) (entity.DraftWish, error) {
	d := entity.DraftWish{Name: strings.TrimSpace(name), Description: description, AddedAt: time.Now()}
	if !d.Validate() {
		return entity.DraftWish{}, ErrInvalidWish
	}
	if err := s.Drafts.Append(ctx, sessionID, d); err != nil {
		return entity.DraftWish{}, err
	}
	return d, nil
}

// List returns the current draft sequence, empty when nothing staged.
func (s *DraftService) List(ctx context.Context, sessionID string) ([]entity.DraftWish, error) {
	return s.Drafts.List(ctx, sessionID)
}

// Clear discards the draft, used on commit or explicit cancel.
func (s *DraftService) Clear(ctx context.Context, sessionID string) error {
	return s.Drafts.Clear(ctx, sessionID)
}

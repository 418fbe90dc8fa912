package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/raihansp/wishwell/internal/domain/entity"
	repo "github.com/raihansp/wishwell/internal/domain/repository"
)

// WishListService owns the aggregate lifecycle (commit a draft, manage
// membership, delete when empty) and the sharing decisions. The caller
// resolves the acting account id before invoking any operation; there
// is no hidden session state here.
type WishListService struct {
	WishLists repo.WishListRepository
	Wishes    repo.WishRepository
	Accounts  repo.AccountRepository
	Drafts    repo.DraftStore
	Logger    *logrus.Logger
}

func NewWishListService(wishlists repo.WishListRepository, wishes repo.WishRepository, accounts repo.AccountRepository, drafts repo.DraftStore, logger *logrus.Logger) *WishListService {
	return &WishListService{WishLists: wishlists, Wishes: wishes, Accounts: accounts, Drafts: drafts, Logger: logger}
}

// Create commits the session draft into a persistent wishlist owned by
// ownerID. Draft entries whose name is not yet in the catalog are
// persisted first; entries matching an existing catalog name reference
// that entry. The draft is cleared on success.
func (s *WishListService) Create(ctx context.Context, eventName string, eventDate time.Time, ownerID, sessionID string) (*entity.WishList, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	if _, err := s.Accounts.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if strings.TrimSpace(eventName) == "" {
		return nil, ErrInvalidWish
	}

	drafts, err := s.Drafts.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	wl := &entity.WishList{EventName: strings.TrimSpace(eventName), EventDate: eventDate, OwnerID: ownerID}
	for _, d := range drafts {
		w, err := s.resolveDraft(ctx, d)
		if err != nil {
			return nil, err
		}
		wl.AppendWish(0, *w)
	}

	if err := s.WishLists.Create(ctx, wl); err != nil {
		return nil, err
	}
	if err := s.Drafts.Clear(ctx, sessionID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("session_id", sessionID).Warn("draft clear failed after commit")
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"wishlist_id": wl.ID, "owner_id": ownerID, "wishes": len(wl.Wishes)}).Info("wishlist created")
	}
	return wl, nil
}

// resolveDraft maps a staged entry onto the catalog: same-name entries
// are reused, everything else is inserted.
func (s *WishListService) resolveDraft(ctx context.Context, d entity.DraftWish) (*entity.Wish, error) {
	if existing, err := s.Wishes.GetByName(ctx, d.Name); err == nil {
		return existing, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	w := &entity.Wish{Name: d.Name, Description: d.Description}
	if !w.Validate() {
		return nil, ErrInvalidWish
	}
	if err := s.Wishes.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Get loads the aggregate for an account allowed to view it.
func (s *WishListService) Get(ctx context.Context, actorID, wishlistID string) (*entity.WishList, error) {
	wl, err := s.load(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	if !wl.CanView(actorID) {
		return nil, ErrForbidden
	}
	return wl, nil
}

// AddWish appends a wish reference to the membership. Duplicates are
// allowed; membership order reflects insertion order. The append is a
// single atomic insert, so concurrent appends both survive.
func (s *WishListService) AddWish(ctx context.Context, actorID, wishlistID, wishID string) error {
	wl, err := s.load(ctx, wishlistID)
	if err != nil {
		return err
	}
	if !wl.CanMutate(actorID) {
		return ErrForbidden
	}
	if _, err := s.Wishes.GetByID(ctx, wishID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.WishLists.AppendWish(ctx, wishlistID, wishID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// RemoveWish removes one membership entry for the wish. With
// duplicates present, the earliest-inserted entry is removed. Removing
// a wish that is not a member is a no-op.
func (s *WishListService) RemoveWish(ctx context.Context, actorID, wishlistID, wishID string) error {
	wl, err := s.load(ctx, wishlistID)
	if err != nil {
		return err
	}
	if !wl.CanMutate(actorID) {
		return ErrForbidden
	}
	_, err = s.WishLists.RemoveWish(ctx, wishlistID, wishID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// Delete destroys the aggregate. A wishlist that still has wishes is
// kept intact and the caller gets ErrNotEmpty.
func (s *WishListService) Delete(ctx context.Context, actorID, wishlistID string) error {
	wl, err := s.load(ctx, wishlistID)
	if err != nil {
		return err
	}
	if !wl.CanMutate(actorID) {
		return ErrForbidden
	}
	if err := s.WishLists.Delete(ctx, wishlistID); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repo.ErrNotEmpty):
			return ErrNotEmpty
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("wishlist_id", wishlistID).Info("wishlist deleted")
	}
	return nil
}

// ListByOwner returns the account's own wishlists in creation order.
func (s *WishListService) ListByOwner(ctx context.Context, ownerID string) ([]*entity.WishList, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	return s.WishLists.ListByOwner(ctx, ownerID)
}

// ListSharedWith returns every wishlist where the account is a viewer.
// Owned wishlists never appear here; ownership and viewership are
// separate predicates.
func (s *WishListService) ListSharedWith(ctx context.Context, accountID string) ([]*entity.WishList, error) {
	if accountID == "" {
		return nil, ErrUnauthenticated
	}
	return s.WishLists.ListByViewer(ctx, accountID)
}

// Share grants read access to each recipient. The owner and accounts
// that are already viewers are silently skipped, so sharing is
// idempotent from the caller's perspective.
func (s *WishListService) Share(ctx context.Context, actorID, wishlistID string, recipientIDs []string) error {
	wl, err := s.load(ctx, wishlistID)
	if err != nil {
		return err
	}
	if !wl.CanMutate(actorID) {
		return ErrForbidden
	}

	add := make([]string, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		if wl.AddViewer(id) {
			add = append(add, id)
		}
	}
	if len(add) == 0 {
		return nil
	}
	if err := s.WishLists.AddViewers(ctx, wishlistID, add); err != nil {
		// ErrReferenced here means the viewers FK fired: one of the
		// recipient ids is not a registered account.
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrReferenced) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ShareByUsernames resolves recipients by username, then shares.
// Unknown usernames are skipped rather than failing the whole batch.
func (s *WishListService) ShareByUsernames(ctx context.Context, actorID, wishlistID string, usernames []string) error {
	accounts, err := s.Accounts.ListByUsernames(ctx, usernames)
	if err != nil {
		return err
	}
	return s.Share(ctx, actorID, wishlistID, accountIDs(accounts))
}

// ShareByEmails resolves recipients by email, then shares.
func (s *WishListService) ShareByEmails(ctx context.Context, actorID, wishlistID string, emails []string) error {
	accounts, err := s.Accounts.ListByEmails(ctx, emails)
	if err != nil {
		return err
	}
	return s.Share(ctx, actorID, wishlistID, accountIDs(accounts))
}

// Unshare removes the recipient from the viewer set; no-op when the
// account is not a viewer.
func (s *WishListService) Unshare(ctx context.Context, actorID, wishlistID, recipientID string) error {
	wl, err := s.load(ctx, wishlistID)
	if err != nil {
		return err
	}
	if !wl.CanMutate(actorID) {
		return ErrForbidden
	}
	if !wl.IsViewer(recipientID) {
		return nil
	}
	return s.WishLists.RemoveViewer(ctx, wishlistID, recipientID)
}

func (s *WishListService) load(ctx context.Context, wishlistID string) (*entity.WishList, error) {
	wl, err := s.WishLists.GetByID(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return wl, nil
}

func accountIDs(accounts []*entity.Account) []string {
	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

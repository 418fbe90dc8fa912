package entity

import (
	"time"
)

// WishEntry is one membership record of a wishlist. EntryID is a
// store-assigned serial that defines insertion order; it is also the
// tie-break when duplicates of the same wish are removed (lowest
// EntryID goes first).
type WishEntry struct {
	EntryID int64
	Wish    Wish
}

// WishList binds an event to an owner, an ordered membership of
// wishes and a set of viewer accounts.
//
// Invariants: the owner is set once at creation and never reassigned;
// the viewer set holds no duplicates and never the owner; a wishlist
// with non-empty membership cannot be deleted.
type WishList struct {
	ID        string
	EventName string
	EventDate time.Time
	OwnerID   string
	Wishes    []WishEntry
	ViewerIDs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanView reports whether the account may read this wishlist.
// The owner check and the viewer check are deliberately separate:
// the owner is never a member of the viewer set.
func (w *WishList) CanView(accountID string) bool {
	if accountID == "" {
		return false
	}
	return w.OwnerID == accountID || w.IsViewer(accountID)
}

// CanMutate reports whether the account may change membership or the
// viewer set. Only the owner may; viewers are read-only.
func (w *WishList) CanMutate(accountID string) bool {
	return accountID != "" && w.OwnerID == accountID
}

// IsViewer reports whether the account is in the viewer set.
func (w *WishList) IsViewer(accountID string) bool {
	for _, id := range w.ViewerIDs {
		if id == accountID {
			return true
		}
	}
	return false
}

// AddViewer grants read access. Sharing with the owner or with an
// existing viewer is silently ignored. Reports whether the set changed.
func (w *WishList) AddViewer(accountID string) bool {
	if accountID == "" || accountID == w.OwnerID || w.IsViewer(accountID) {
		return false
	}
	w.ViewerIDs = append(w.ViewerIDs, accountID)
	return true
}

// RemoveViewer revokes read access; no-op when not a viewer.
func (w *WishList) RemoveViewer(accountID string) bool {
	for i, id := range w.ViewerIDs {
		if id == accountID {
			w.ViewerIDs = append(w.ViewerIDs[:i], w.ViewerIDs[i+1:]...)
			return true
		}
	}
	return false
}

// AppendWish adds a membership entry. Duplicates are allowed; each
// append is independent and keeps insertion order.
func (w *WishList) AppendWish(entryID int64, wish Wish) {
	w.Wishes = append(w.Wishes, WishEntry{EntryID: entryID, Wish: wish})
}

// RemoveWish drops the earliest-inserted entry referencing wishID.
// Removing a wish that is not a member is a no-op. Reports whether an
// entry was removed.
func (w *WishList) RemoveWish(wishID string) bool {
	for i, e := range w.Wishes {
		if e.Wish.ID == wishID {
			w.Wishes = append(w.Wishes[:i], w.Wishes[i+1:]...)
			return true
		}
	}
	return false
}

// Empty reports whether the membership is empty, which is the only
// state in which the wishlist may be deleted.
func (w *WishList) Empty() bool {
	return len(w.Wishes) == 0
}

package entity

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxWishDescriptionLen bounds the description column.
const MaxWishDescriptionLen = 500

// Wish is a reusable catalog entry. It is ownerless; any wishlist
// may reference it.
type Wish struct {
	ID          string
	Name        string
	Description string
	AddedAt     time.Time
}

// Validate checks the mutable fields of a wish.
func (w *Wish) Validate() bool {
	return validWishFields(w.Name, w.Description)
}

// DraftWish is a session-staged candidate wish. It carries a copy of
// the catalog fields and no identity; it only exists as input to
// wishlist creation.
type DraftWish struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AddedAt     time.Time `json:"added_at"`
}

// CopyOf stages a catalog wish by value. Mutating the catalog entry
// afterwards must not affect the staged copy.
func CopyOf(w *Wish) DraftWish {
	return DraftWish{Name: w.Name, Description: w.Description, AddedAt: w.AddedAt}
}

func (d *DraftWish) Validate() bool {
	return validWishFields(d.Name, d.Description)
}

func validWishFields(name, description string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return utf8.RuneCountInString(description) <= MaxWishDescriptionLen
}

package entity

import (
	"testing"
	"time"
)

func sampleList() *WishList {
	return &WishList{
		ID:        "wl-1",
		EventName: "Birthday",
		EventDate: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		OwnerID:   "owner-1",
	}
}

func TestCanViewAndCanMutate(t *testing.T) {
	wl := sampleList()
	wl.AddViewer("viewer-1")

	tests := []struct {
		name      string
		accountID string
		canView   bool
		canMutate bool
	}{
		{"owner", "owner-1", true, true},
		{"viewer", "viewer-1", true, false},
		{"stranger", "other-1", false, false},
		{"unauthenticated", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wl.CanView(tt.accountID); got != tt.canView {
				t.Errorf("CanView(%q) = %v, want %v", tt.accountID, got, tt.canView)
			}
			if got := wl.CanMutate(tt.accountID); got != tt.canMutate {
				t.Errorf("CanMutate(%q) = %v, want %v", tt.accountID, got, tt.canMutate)
			}
		})
	}
}

func TestAddViewerIgnoresOwnerAndDuplicates(t *testing.T) {
	wl := sampleList()

	if wl.AddViewer(wl.OwnerID) {
		t.Error("sharing with the owner must be ignored")
	}
	if !wl.AddViewer("viewer-1") {
		t.Error("first share should change the viewer set")
	}
	if wl.AddViewer("viewer-1") {
		t.Error("second share with the same account must be ignored")
	}
	if len(wl.ViewerIDs) != 1 {
		t.Errorf("viewer set size = %d, want 1", len(wl.ViewerIDs))
	}
	if wl.IsViewer(wl.OwnerID) {
		t.Error("owner must never be a viewer")
	}
}

func TestRemoveViewer(t *testing.T) {
	wl := sampleList()
	wl.AddViewer("viewer-1")

	if !wl.RemoveViewer("viewer-1") {
		t.Error("expected removal of existing viewer")
	}
	if wl.RemoveViewer("viewer-1") {
		t.Error("removing an absent viewer must be a no-op")
	}
	if len(wl.ViewerIDs) != 0 {
		t.Errorf("viewer set size = %d, want 0", len(wl.ViewerIDs))
	}
}

func TestAppendWishKeepsInsertionOrderAndDuplicates(t *testing.T) {
	wl := sampleList()
	bike := Wish{ID: "w-bike", Name: "Bike"}
	book := Wish{ID: "w-book", Name: "Book"}

	wl.AppendWish(1, bike)
	wl.AppendWish(2, book)
	wl.AppendWish(3, bike)

	if len(wl.Wishes) != 3 {
		t.Fatalf("membership size = %d, want 3", len(wl.Wishes))
	}
	want := []string{"w-bike", "w-book", "w-bike"}
	for i, id := range want {
		if wl.Wishes[i].Wish.ID != id {
			t.Errorf("membership[%d] = %q, want %q", i, wl.Wishes[i].Wish.ID, id)
		}
	}
}

func TestRemoveWishFirstMatch(t *testing.T) {
	wl := sampleList()
	bike := Wish{ID: "w-bike", Name: "Bike"}
	book := Wish{ID: "w-book", Name: "Book"}
	wl.AppendWish(1, bike)
	wl.AppendWish(2, book)
	wl.AppendWish(3, bike)

	if !wl.RemoveWish("w-bike") {
		t.Fatal("expected a removal")
	}
	// The earliest-inserted duplicate goes first.
	if wl.Wishes[0].EntryID != 2 || wl.Wishes[1].EntryID != 3 {
		t.Errorf("remaining entries = [%d %d], want [2 3]", wl.Wishes[0].EntryID, wl.Wishes[1].EntryID)
	}

	if wl.RemoveWish("w-absent") {
		t.Error("removing an absent wish must be a no-op")
	}
	if len(wl.Wishes) != 2 {
		t.Errorf("membership size = %d, want 2", len(wl.Wishes))
	}
}

func TestEmpty(t *testing.T) {
	wl := sampleList()
	if !wl.Empty() {
		t.Error("new wishlist should be empty")
	}
	wl.AppendWish(1, Wish{ID: "w-1", Name: "Bike"})
	if wl.Empty() {
		t.Error("wishlist with membership is not empty")
	}
}

func TestWishValidate(t *testing.T) {
	long := make([]rune, MaxWishDescriptionLen+1)
	for i := range long {
		long[i] = 'x'
	}
	tests := []struct {
		name        string
		wishName    string
		description string
		want        bool
	}{
		{"ok", "Bike", "red one", true},
		{"empty name", "", "red one", false},
		{"blank name", "   ", "", false},
		{"empty description ok", "Bike", "", true},
		{"description too long", "Bike", string(long), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Wish{Name: tt.wishName, Description: tt.description}
			if got := w.Validate(); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCopyOfIsDetachedFromCatalog(t *testing.T) {
	w := &Wish{ID: "w-1", Name: "Bike", Description: "red", AddedAt: time.Now()}
	d := CopyOf(w)
	w.Name = "Renamed"
	w.Description = "blue"
	if d.Name != "Bike" || d.Description != "red" {
		t.Errorf("draft copy changed with catalog entry: %+v", d)
	}
}

package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/raihansp/wishwell/internal/domain/entity"
	repo "github.com/raihansp/wishwell/internal/domain/repository"
)

func ownerAccount() *entity.Account {
	return &entity.Account{Email: "owner@example.com", Username: "owner", PasswordHash: "x"}
}

func eventDate() time.Time {
	return time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
}

type wishlistFixtures struct {
	accounts  *memAccounts
	wishes    *memWishes
	wishlists *memWishLists
	drafts    *memDrafts
	wishSvc   *WishService
	draftSvc  *DraftService
	listSvc   *WishListService
	ownerID   string
}

func newWishlistFixtures(t *testing.T) *wishlistFixtures {
	t.Helper()
	accounts := newMemAccounts()
	wishes := newMemWishes()
	wishlists := newMemWishLists(wishes)
	drafts := newMemDrafts()

	owner := ownerAccount()
	if err := accounts.Create(context.Background(), owner); err != nil {
		t.Fatal(err)
	}
	return &wishlistFixtures{
		accounts:  accounts,
		wishes:    wishes,
		wishlists: wishlists,
		drafts:    drafts,
		wishSvc:   NewWishService(wishes, wishlists, nil),
		draftSvc:  NewDraftService(drafts, wishes),
		listSvc:   NewWishListService(wishlists, wishes, accounts, drafts, nil),
		ownerID:   owner.ID,
	}
}

func (f *wishlistFixtures) register(t *testing.T, email, username string) *entity.Account {
	t.Helper()
	a := &entity.Account{Email: email, Username: username, PasswordHash: "x"}
	if err := f.accounts.Create(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestCreateFromDraft(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	if _, err := f.draftSvc.StageNew(ctx, "sess-1", "Bike", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := f.draftSvc.StageNew(ctx, "sess-1", "Book", ""); err != nil {
		t.Fatal(err)
	}

	wl, err := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(wl.Wishes) != 2 {
		t.Fatalf("membership size = %d, want 2", len(wl.Wishes))
	}
	if wl.Wishes[0].Wish.Name != "Bike" || wl.Wishes[1].Wish.Name != "Book" {
		t.Errorf("membership order = [%s %s], want [Bike Book]", wl.Wishes[0].Wish.Name, wl.Wishes[1].Wish.Name)
	}
	if wl.OwnerID != f.ownerID {
		t.Errorf("owner = %q, want %q", wl.OwnerID, f.ownerID)
	}

	// Staged wishes were persisted into the catalog.
	if _, err := f.wishes.GetByName(ctx, "Bike"); err != nil {
		t.Errorf("staged wish not in catalog: %v", err)
	}

	// The draft is cleared on commit.
	left, err := f.draftSvc.List(ctx, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Errorf("draft size after commit = %d, want 0", len(left))
	}
}

func TestCreateReusesCatalogEntriesByName(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	w, err := f.wishSvc.Add(ctx, "Bike", "red")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.draftSvc.StageExisting(ctx, "sess-1", w.ID); err != nil {
		t.Fatal(err)
	}

	wl, err := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if wl.Wishes[0].Wish.ID != w.ID {
		t.Errorf("membership references %q, want existing catalog entry %q", wl.Wishes[0].Wish.ID, w.ID)
	}
	all, _ := f.wishes.List(ctx)
	if len(all) != 1 {
		t.Errorf("catalog size = %d, want 1 (no duplicate insert)", len(all))
	}
}

func TestCreateRequiresOwner(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	if _, err := f.listSvc.Create(ctx, "Birthday", eventDate(), "", "sess-1"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("empty owner: want ErrUnauthenticated, got %v", err)
	}
	if _, err := f.listSvc.Create(ctx, "Birthday", eventDate(), "acc-ghost", "sess-1"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("unknown owner: want ErrUnauthenticated, got %v", err)
	}
}

func TestAddWishAndOrder(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	wl, err := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	bike, _ := f.wishSvc.Add(ctx, "Bike", "")
	book, _ := f.wishSvc.Add(ctx, "Book", "")

	for _, id := range []string{bike.ID, book.ID, bike.ID} {
		if err := f.listSvc.AddWish(ctx, f.ownerID, wl.ID, id); err != nil {
			t.Fatalf("AddWish(%s): %v", id, err)
		}
	}

	got, err := f.listSvc.Get(ctx, f.ownerID, wl.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{bike.ID, book.ID, bike.ID}
	if len(got.Wishes) != len(want) {
		t.Fatalf("membership size = %d, want %d", len(got.Wishes), len(want))
	}
	for i, id := range want {
		if got.Wishes[i].Wish.ID != id {
			t.Errorf("membership[%d] = %q, want %q", i, got.Wishes[i].Wish.ID, id)
		}
	}

	if err := f.listSvc.AddWish(ctx, f.ownerID, wl.ID, "wish-ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown wish: want ErrNotFound, got %v", err)
	}
	if err := f.listSvc.AddWish(ctx, f.ownerID, "wl-ghost", bike.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown wishlist: want ErrNotFound, got %v", err)
	}
}

func TestConcurrentAddWishKeepsBoth(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	wl, err := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	w1, _ := f.wishSvc.Add(ctx, "Bike", "")
	w2, _ := f.wishSvc.Add(ctx, "Book", "")

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, id := range []string{w1.ID, w2.ID} {
		wg.Add(1)
		go func(wishID string) {
			defer wg.Done()
			errs <- f.listSvc.AddWish(ctx, f.ownerID, wl.ID, wishID)
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent AddWish: %v", err)
		}
	}

	got, err := f.listSvc.Get(ctx, f.ownerID, wl.ID)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, e := range got.Wishes {
		seen[e.Wish.ID] = true
	}
	if len(got.Wishes) != 2 || !seen[w1.ID] || !seen[w2.ID] {
		t.Errorf("lost update: membership = %v", got.Wishes)
	}
}

func TestRemoveWishSemantics(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	wl, _ := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	bike, _ := f.wishSvc.Add(ctx, "Bike", "")

	// Not a member yet: no-op, no error.
	if err := f.listSvc.RemoveWish(ctx, f.ownerID, wl.ID, bike.ID); err != nil {
		t.Errorf("remove absent wish: want no-op, got %v", err)
	}

	_ = f.listSvc.AddWish(ctx, f.ownerID, wl.ID, bike.ID)
	_ = f.listSvc.AddWish(ctx, f.ownerID, wl.ID, bike.ID)

	if err := f.listSvc.RemoveWish(ctx, f.ownerID, wl.ID, bike.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := f.listSvc.Get(ctx, f.ownerID, wl.ID)
	if len(got.Wishes) != 1 {
		t.Errorf("exactly one duplicate must be removed, have %d entries", len(got.Wishes))
	}

	if err := f.listSvc.RemoveWish(ctx, f.ownerID, "wl-ghost", bike.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown wishlist: want ErrNotFound, got %v", err)
	}
}

func TestDeleteRequiresEmptyMembership(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	wl, _ := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	bike, _ := f.wishSvc.Add(ctx, "Bike", "")
	_ = f.listSvc.AddWish(ctx, f.ownerID, wl.ID, bike.ID)

	if err := f.listSvc.Delete(ctx, f.ownerID, wl.ID); !errors.Is(err, ErrNotEmpty) {
		t.Fatalf("want ErrNotEmpty, got %v", err)
	}
	// Aggregate left intact.
	if _, err := f.listSvc.Get(ctx, f.ownerID, wl.ID); err != nil {
		t.Fatalf("wishlist must survive a refused delete: %v", err)
	}

	if err := f.listSvc.RemoveWish(ctx, f.ownerID, wl.ID, bike.ID); err != nil {
		t.Fatal(err)
	}
	if err := f.listSvc.Delete(ctx, f.ownerID, wl.ID); err != nil {
		t.Fatalf("delete after emptying: %v", err)
	}
	if _, err := f.listSvc.Get(ctx, f.ownerID, wl.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound after delete, got %v", err)
	}
}

func TestShareIdempotentAndSelfIgnored(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	wl, _ := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	viewer := f.register(t, "viewer@example.com", "viewer")

	for i := 0; i < 2; i++ {
		if err := f.listSvc.Share(ctx, f.ownerID, wl.ID, []string{viewer.ID, f.ownerID}); err != nil {
			t.Fatalf("Share #%d: %v", i+1, err)
		}
	}

	got, _ := f.listSvc.Get(ctx, f.ownerID, wl.ID)
	if len(got.ViewerIDs) != 1 {
		t.Errorf("viewer set size = %d, want 1", len(got.ViewerIDs))
	}
	if got.IsViewer(f.ownerID) {
		t.Error("owner must never land in the viewer set")
	}

	if err := f.listSvc.Share(ctx, f.ownerID, "wl-ghost", []string{viewer.ID}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown wishlist: want ErrNotFound, got %v", err)
	}
}

func TestViewAuthorization(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	wl, _ := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	viewer := f.register(t, "viewer@example.com", "viewer")
	stranger := f.register(t, "other@example.com", "other")
	_ = f.listSvc.Share(ctx, f.ownerID, wl.ID, []string{viewer.ID})

	if _, err := f.listSvc.Get(ctx, f.ownerID, wl.ID); err != nil {
		t.Errorf("owner view: %v", err)
	}
	if _, err := f.listSvc.Get(ctx, viewer.ID, wl.ID); err != nil {
		t.Errorf("viewer view: %v", err)
	}
	if _, err := f.listSvc.Get(ctx, stranger.ID, wl.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger view: want ErrForbidden, got %v", err)
	}
	if _, err := f.listSvc.Get(ctx, "", wl.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("unauthenticated view: want ErrForbidden, got %v", err)
	}

	// Viewers may never mutate.
	bike, _ := f.wishSvc.Add(ctx, "Bike", "")
	if err := f.listSvc.AddWish(ctx, viewer.ID, wl.ID, bike.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("viewer AddWish: want ErrForbidden, got %v", err)
	}
	if err := f.listSvc.Delete(ctx, viewer.ID, wl.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("viewer Delete: want ErrForbidden, got %v", err)
	}
	if err := f.listSvc.Share(ctx, viewer.ID, wl.ID, []string{stranger.ID}); !errors.Is(err, ErrForbidden) {
		t.Errorf("viewer Share: want ErrForbidden, got %v", err)
	}
}

func TestUnshare(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	wl, _ := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	viewer := f.register(t, "viewer@example.com", "viewer")
	_ = f.listSvc.Share(ctx, f.ownerID, wl.ID, []string{viewer.ID})

	if err := f.listSvc.Unshare(ctx, f.ownerID, wl.ID, viewer.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := f.listSvc.Get(ctx, f.ownerID, wl.ID)
	if got.IsViewer(viewer.ID) {
		t.Error("viewer still present after unshare")
	}
	// Unsharing a non-viewer is a no-op.
	if err := f.listSvc.Unshare(ctx, f.ownerID, wl.ID, viewer.ID); err != nil {
		t.Errorf("unshare non-viewer: want no-op, got %v", err)
	}
}

func TestListByOwnerAndSharedWith(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	first, _ := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	second, _ := f.listSvc.Create(ctx, "Christmas", eventDate(), f.ownerID, "sess-1")
	viewer := f.register(t, "viewer@example.com", "viewer")
	_ = f.listSvc.Share(ctx, f.ownerID, first.ID, []string{viewer.ID})

	owned, err := f.listSvc.ListByOwner(ctx, f.ownerID)
	if err != nil {
		t.Fatal(err)
	}
	if len(owned) != 2 || owned[0].ID != first.ID || owned[1].ID != second.ID {
		t.Errorf("ListByOwner order/content wrong: %v", owned)
	}

	shared, err := f.listSvc.ListSharedWith(ctx, viewer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(shared) != 1 || shared[0].ID != first.ID {
		t.Errorf("ListSharedWith = %v, want only the shared wishlist", shared)
	}

	// The owner's own lists never show up as shared-with.
	sharedOwner, _ := f.listSvc.ListSharedWith(ctx, f.ownerID)
	if len(sharedOwner) != 0 {
		t.Errorf("owner must not see own lists as shared, got %d", len(sharedOwner))
	}
}

func TestShareByUsernames(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	wl, _ := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	viewer := f.register(t, "viewer@example.com", "viewer")

	if err := f.listSvc.ShareByUsernames(ctx, f.ownerID, wl.ID, []string{"viewer", "ghost"}); err != nil {
		t.Fatal(err)
	}
	got, _ := f.listSvc.Get(ctx, f.ownerID, wl.ID)
	if !got.IsViewer(viewer.ID) {
		t.Error("resolved recipient missing from viewer set")
	}
	if len(got.ViewerIDs) != 1 {
		t.Errorf("viewer set size = %d, want 1 (unknown usernames skipped)", len(got.ViewerIDs))
	}
}

// fake standing in for the viewers FK rejecting an unregistered
// recipient account id.
type unknownViewerWishLists struct {
	*memWishLists
}

func (m *unknownViewerWishLists) AddViewers(context.Context, string, []string) error {
	return repo.ErrReferenced
}

func TestShareUnknownRecipientID(t *testing.T) {
	f := newWishlistFixtures(t)
	ctx := context.Background()

	wl, err := f.listSvc.Create(ctx, "Birthday", eventDate(), f.ownerID, "sess-1")
	if err != nil {
		t.Fatal(err)
	}

	svc := NewWishListService(&unknownViewerWishLists{f.wishlists}, f.wishes, f.accounts, f.drafts, nil)
	if err := svc.Share(ctx, f.ownerID, wl.ID, []string{"acc-ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown recipient id: want ErrNotFound, got %v", err)
	}
}

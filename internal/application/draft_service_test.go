package application

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func newDraftFixtures() (*DraftService, *WishService) {
	wishes := newMemWishes()
	wishlists := newMemWishLists(wishes)
	drafts := newMemDrafts()
	return NewDraftService(drafts, wishes), NewWishService(wishes, wishlists, nil)
}

func TestStageExistingCopiesCatalogEntry(t *testing.T) {
	ds, ws := newDraftFixtures()
	ctx := context.Background()

	w, err := ws.Add(ctx, "Bike", "red")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ds.StageExisting(ctx, "sess-1", w.ID); err != nil {
		t.Fatalf("StageExisting: %v", err)
	}

	// Renaming the catalog entry must not touch the staged copy.
	if _, err := ws.Update(ctx, w.ID, "Bicycle", "blue"); err != nil {
		t.Fatal(err)
	}
	staged, err := ds.List(ctx, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(staged) != 1 || staged[0].Name != "Bike" || staged[0].Description != "red" {
		t.Errorf("staged copy aliased catalog state: %+v", staged)
	}
}

func TestStageExistingUnknownWish(t *testing.T) {
	ds, _ := newDraftFixtures()
	if _, err := ds.StageExisting(context.Background(), "sess-1", "wish-ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestStagingIsNotIdempotent(t *testing.T) {
	ds, ws := newDraftFixtures()
	ctx := context.Background()

	w, _ := ws.Add(ctx, "Bike", "")
	for i := 0; i < 2; i++ {
		if _, err := ds.StageExisting(ctx, "sess-1", w.ID); err != nil {
			t.Fatal(err)
		}
	}
	staged, _ := ds.List(ctx, "sess-1")
	if len(staged) != 2 {
		t.Errorf("staging twice must yield two entries, got %d", len(staged))
	}
}

func TestStageNewValidation(t *testing.T) {
	ds, _ := newDraftFixtures()
	ctx := context.Background()

	if _, err := ds.StageNew(ctx, "sess-1", "  ", ""); !errors.Is(err, ErrInvalidWish) {
		t.Errorf("blank name: want ErrInvalidWish, got %v", err)
	}
	if _, err := ds.StageNew(ctx, "sess-1", "Bike", ""); err != nil {
		t.Errorf("StageNew: %v", err)
	}
}

func TestDraftsAreSessionScoped(t *testing.T) {
	ds, _ := newDraftFixtures()
	ctx := context.Background()

	if _, err := ds.StageNew(ctx, "sess-1", "Bike", ""); err != nil {
		t.Fatal(err)
	}
	other, err := ds.List(ctx, "sess-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("draft leaked across sessions: %v", other)
	}
}

func TestClearEmptiesDraft(t *testing.T) {
	ds, _ := newDraftFixtures()
	ctx := context.Background()

	if _, err := ds.StageNew(ctx, "sess-1", "Bike", ""); err != nil {
		t.Fatal(err)
	}
	if err := ds.Clear(ctx, "sess-1"); err != nil {
		t.Fatal(err)
	}
	staged, _ := ds.List(ctx, "sess-1")
	if len(staged) != 0 {
		t.Errorf("draft size after clear = %d, want 0", len(staged))
	}
	// Clearing an empty draft is fine.
	if err := ds.Clear(ctx, "sess-1"); err != nil {
		t.Errorf("clear on empty draft: %v", err)
	}
}

func TestConcurrentStagingLosesNothing(t *testing.T) {
	ds, ws := newDraftFixtures()
	ctx := context.Background()

	w, _ := ws.Add(ctx, "Bike", "")
	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ds.StageExisting(ctx, "sess-1", w.ID)
		}()
	}
	wg.Wait()

	staged, _ := ds.List(ctx, "sess-1")
	if len(staged) != n {
		t.Errorf("draft size = %d, want %d", len(staged), n)
	}
}

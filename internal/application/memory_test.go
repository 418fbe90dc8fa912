package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/raihansp/wishwell/internal/domain/entity"
	repo "github.com/raihansp/wishwell/internal/domain/repository"
)

// In-memory fakes of the persistence gateway, mirroring the contracts
// the postgres implementations honor (serialized per-aggregate writes,
// ErrNotFound/ErrNotEmpty/ErrReferenced semantics).

type memAccounts struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*entity.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: map[string]*entity.Account{}}
}

func (m *memAccounts) Create(_ context.Context, a *entity.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Email == a.Email {
			return repo.ErrEmailTaken
		}
		if x.Username == a.Username {
			return repo.ErrUsernameTaken
		}
	}
	m.seq++
	a.ID = fmt.Sprintf("acc-%d", m.seq)
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.byID[a.ID] = a
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memAccounts) GetByUsername(_ context.Context, username string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memAccounts) ListByEmails(_ context.Context, emails []string) ([]*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Account
	for _, e := range emails {
		for _, a := range m.byID {
			if a.Email == e {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (m *memAccounts) ListByUsernames(_ context.Context, usernames []string) ([]*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Account
	for _, u := range usernames {
		for _, a := range m.byID {
			if a.Username == u {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (m *memAccounts) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = time.Now()
	return nil
}

var _ repo.AccountRepository = (*memAccounts)(nil)

type memWishes struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*entity.Wish
}

func newMemWishes() *memWishes {
	return &memWishes{byID: map[string]*entity.Wish{}}
}

func (m *memWishes) Create(_ context.Context, w *entity.Wish) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	w.ID = fmt.Sprintf("wish-%d", m.seq)
	w.AddedAt = time.Now()
	cp := *w
	m.byID[w.ID] = &cp
	return nil
}

func (m *memWishes) GetByID(_ context.Context, id string) (*entity.Wish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.byID[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memWishes) GetByName(_ context.Context, name string) (*entity.Wish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.byID {
		if w.Name == name {
			cp := *w
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memWishes) List(_ context.Context) ([]*entity.Wish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Wish, 0, len(m.byID))
	for _, w := range m.byID {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memWishes) Update(_ context.Context, w *entity.Wish) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[w.ID]
	if !ok {
		return repo.ErrNotFound
	}
	stored.Name = w.Name
	stored.Description = w.Description
	return nil
}

func (m *memWishes) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

var _ repo.WishRepository = (*memWishes)(nil)

type memWishLists struct {
	mu     sync.Mutex
	seq    int
	entry  int64
	byID   map[string]*entity.WishList
	wishes *memWishes
}

func newMemWishLists(wishes *memWishes) *memWishLists {
	return &memWishLists{byID: map[string]*entity.WishList{}, wishes: wishes}
}

func (m *memWishLists) Create(_ context.Context, wl *entity.WishList) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	wl.ID = fmt.Sprintf("wl-%d", m.seq)
	wl.CreatedAt = time.Now()
	for i := range wl.Wishes {
		m.entry++
		wl.Wishes[i].EntryID = m.entry
	}
	cp := *wl
	cp.Wishes = append([]entity.WishEntry(nil), wl.Wishes...)
	cp.ViewerIDs = append([]string(nil), wl.ViewerIDs...)
	m.byID[wl.ID] = &cp
	return nil
}

func (m *memWishLists) GetByID(_ context.Context, id string) (*entity.WishList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wl, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *wl
	cp.Wishes = append([]entity.WishEntry(nil), wl.Wishes...)
	cp.ViewerIDs = append([]string(nil), wl.ViewerIDs...)
	return &cp, nil
}

func (m *memWishLists) ListByOwner(_ context.Context, ownerID string) ([]*entity.WishList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.WishList
	for i := 1; i <= m.seq; i++ {
		wl, ok := m.byID[fmt.Sprintf("wl-%d", i)]
		if ok && wl.OwnerID == ownerID {
			out = append(out, wl)
		}
	}
	return out, nil
}

func (m *memWishLists) ListByViewer(_ context.Context, accountID string) ([]*entity.WishList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.WishList
	for i := 1; i <= m.seq; i++ {
		wl, ok := m.byID[fmt.Sprintf("wl-%d", i)]
		if ok && wl.IsViewer(accountID) {
			out = append(out, wl)
		}
	}
	return out, nil
}

func (m *memWishLists) AppendWish(_ context.Context, wishlistID, wishID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	wl, ok := m.byID[wishlistID]
	if !ok {
		return repo.ErrNotFound
	}
	w, ok := m.wishes.byID[wishID]
	if !ok {
		return repo.ErrNotFound
	}
	m.entry++
	wl.AppendWish(m.entry, *w)
	return nil
}

func (m *memWishLists) RemoveWish(_ context.Context, wishlistID, wishID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wl, ok := m.byID[wishlistID]
	if !ok {
		return false, repo.ErrNotFound
	}
	return wl.RemoveWish(wishID), nil
}

func (m *memWishLists) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	wl, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	if !wl.Empty() {
		return repo.ErrNotEmpty
	}
	delete(m.byID, id)
	return nil
}

func (m *memWishLists) AddViewers(_ context.Context, wishlistID string, accountIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	wl, ok := m.byID[wishlistID]
	if !ok {
		return repo.ErrNotFound
	}
	for _, id := range accountIDs {
		wl.AddViewer(id)
	}
	return nil
}

func (m *memWishLists) RemoveViewer(_ context.Context, wishlistID, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	wl, ok := m.byID[wishlistID]
	if !ok {
		return repo.ErrNotFound
	}
	wl.RemoveViewer(accountID)
	return nil
}

func (m *memWishLists) CountMembershipsByWish(_ context.Context, wishID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, wl := range m.byID {
		for _, e := range wl.Wishes {
			if e.Wish.ID == wishID {
				n++
			}
		}
	}
	return n, nil
}

var _ repo.WishListRepository = (*memWishLists)(nil)

type memDrafts struct {
	mu        sync.Mutex
	bySession map[string][]entity.DraftWish
}

func newMemDrafts() *memDrafts {
	return &memDrafts{bySession: map[string][]entity.DraftWish{}}
}

func (m *memDrafts) Append(_ context.Context, sessionID string, d entity.DraftWish) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bySession[sessionID] = append(m.bySession[sessionID], d)
	return nil
}

func (m *memDrafts) List(_ context.Context, sessionID string) ([]entity.DraftWish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.DraftWish(nil), m.bySession[sessionID]...), nil
}

func (m *memDrafts) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bySession, sessionID)
	return nil
}

var _ repo.DraftStore = (*memDrafts)(nil)

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raihansp/wishwell/internal/domain/entity"
	"github.com/raihansp/wishwell/internal/domain/repository"
)

// WishListRepository persists the aggregate across three tables:
// wishlists, wishlist_wishes (membership; the serial entry_id defines
// insertion order) and wishlist_viewers.
type WishListRepository struct {
	pool *pgxpool.Pool
}

func NewWishListRepository(pool *pgxpool.Pool) *WishListRepository {
	return &WishListRepository{pool: pool}
}

func (r *WishListRepository) Create(ctx context.Context, wl *entity.WishList) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO wishlists (event_name, event_date, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, wl.EventName, wl.EventDate, wl.OwnerID)
	if err := row.Scan(&wl.ID, &wl.CreatedAt, &wl.UpdatedAt); err != nil {
		return mapPgError(err)
	}

	for i := range wl.Wishes {
		row := tx.QueryRow(ctx, `
			INSERT INTO wishlist_wishes (wishlist_id, wish_id)
			VALUES ($1, $2)
			RETURNING entry_id
		`, wl.ID, wl.Wishes[i].Wish.ID)
		if err := row.Scan(&wl.Wishes[i].EntryID); err != nil {
			return mapPgError(err)
		}
	}

	return tx.Commit(ctx)
}

func (r *WishListRepository) GetByID(ctx context.Context, id string) (*entity.WishList, error) {
	wl := &entity.WishList{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, event_name, event_date, owner_id, created_at, updated_at
		FROM wishlists
		WHERE id = $1
	`, id)
	if err := row.Scan(&wl.ID, &wl.EventName, &wl.EventDate, &wl.OwnerID, &wl.CreatedAt, &wl.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadMembership(ctx, wl); err != nil {
		return nil, err
	}
	if err := r.loadViewers(ctx, wl); err != nil {
		return nil, err
	}
	return wl, nil
}

func (r *WishListRepository) loadMembership(ctx context.Context, wl *entity.WishList) error {
	rows, err := r.pool.Query(ctx, `
		SELECT m.entry_id, w.id, w.name, w.description, w.added_at
		FROM wishlist_wishes m
		JOIN wishes w ON w.id = m.wish_id
		WHERE m.wishlist_id = $1
		ORDER BY m.entry_id
	`, wl.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e entity.WishEntry
		if err := rows.Scan(&e.EntryID, &e.Wish.ID, &e.Wish.Name, &e.Wish.Description, &e.Wish.AddedAt); err != nil {
			return err
		}
		wl.Wishes = append(wl.Wishes, e)
	}
	return rows.Err()
}

func (r *WishListRepository) loadViewers(ctx context.Context, wl *entity.WishList) error {
	rows, err := r.pool.Query(ctx, `
		SELECT account_id
		FROM wishlist_viewers
		WHERE wishlist_id = $1
		ORDER BY shared_at
	`, wl.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		wl.ViewerIDs = append(wl.ViewerIDs, id)
	}
	return rows.Err()
}

func (r *WishListRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.WishList, error) {
	return r.list(ctx, `
		SELECT id, event_name, event_date, owner_id, created_at, updated_at
		FROM wishlists
		WHERE owner_id = $1
		ORDER BY created_at, id
	`, ownerID)
}

func (r *WishListRepository) ListByViewer(ctx context.Context, accountID string) ([]*entity.WishList, error) {
	return r.list(ctx, `
		SELECT l.id, l.event_name, l.event_date, l.owner_id, l.created_at, l.updated_at
		FROM wishlists l
		JOIN wishlist_viewers v ON v.wishlist_id = l.id
		WHERE v.account_id = $1
		ORDER BY l.created_at, l.id
	`, accountID)
}

func (r *WishListRepository) list(ctx context.Context, query, arg string) ([]*entity.WishList, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.WishList
	for rows.Next() {
		wl := &entity.WishList{}
		if err := rows.Scan(&wl.ID, &wl.EventName, &wl.EventDate, &wl.OwnerID, &wl.CreatedAt, &wl.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, wl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, wl := range out {
		if err := r.loadMembership(ctx, wl); err != nil {
			return nil, err
		}
		if err := r.loadViewers(ctx, wl); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AppendWish is a single insert; the serial entry_id assigns the
// position, so two concurrent appends both land and keep their
// arrival order.
func (r *WishListRepository) AppendWish(ctx context.Context, wishlistID, wishID string) error {
	res, err := r.pool.Exec(ctx, `
		INSERT INTO wishlist_wishes (wishlist_id, wish_id)
		SELECT $1, $2
		WHERE EXISTS (SELECT 1 FROM wishlists WHERE id = $1)
		  AND EXISTS (SELECT 1 FROM wishes WHERE id = $2)
	`, wishlistID, wishID)
	if err != nil {
		return mapPgError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RemoveWish deletes the earliest-inserted membership entry for the
// wish (lowest entry_id wins among duplicates). Zero rows affected is
// the documented no-op, not an error, once the wishlist itself exists.
func (r *WishListRepository) RemoveWish(ctx context.Context, wishlistID, wishID string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wishlists WHERE id = $1)`, wishlistID).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, repository.ErrNotFound
	}

	res, err := r.pool.Exec(ctx, `
		DELETE FROM wishlist_wishes
		WHERE entry_id = (
			SELECT entry_id FROM wishlist_wishes
			WHERE wishlist_id = $1 AND wish_id = $2
			ORDER BY entry_id
			LIMIT 1
		)
	`, wishlistID, wishID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// Delete removes the aggregate only while its membership is empty; the
// guard sits inside the statement so the check cannot race an append.
func (r *WishListRepository) Delete(ctx context.Context, id string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wishlists WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}

	res, err := r.pool.Exec(ctx, `
		DELETE FROM wishlists
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM wishlist_wishes WHERE wishlist_id = $1)
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotEmpty
	}
	return nil
}

// AddViewers inserts the recipients; ON CONFLICT keeps the viewer set
// duplicate-free without failing the batch.
func (r *WishListRepository) AddViewers(ctx context.Context, wishlistID string, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wishlists WHERE id = $1)`, wishlistID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO wishlist_viewers (wishlist_id, account_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT (wishlist_id, account_id) DO NOTHING
	`, wishlistID, accountIDs)
	return mapPgError(err)
}

func (r *WishListRepository) RemoveViewer(ctx context.Context, wishlistID, accountID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM wishlist_viewers
		WHERE wishlist_id = $1 AND account_id = $2
	`, wishlistID, accountID)
	return err
}

func (r *WishListRepository) CountMembershipsByWish(ctx context.Context, wishID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM wishlist_wishes WHERE wish_id = $1
	`, wishID).Scan(&n)
	return n, err
}

var _ repository.WishListRepository = (*WishListRepository)(nil)

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raihansp/wishwell/internal/domain/entity"
	"github.com/raihansp/wishwell/internal/domain/repository"
)

type WishRepository struct {
	pool *pgxpool.Pool
}

func NewWishRepository(pool *pgxpool.Pool) *WishRepository {
	return &WishRepository{pool: pool}
}

func (r *WishRepository) Create(ctx context.Context, w *entity.Wish) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO wishes (name, description)
		VALUES ($1, $2)
		RETURNING id, added_at
	`, w.Name, w.Description)

	if err := row.Scan(&w.ID, &w.AddedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *WishRepository) GetByID(ctx context.Context, id string) (*entity.Wish, error) {
	return r.getBy(ctx, "id", id)
}

func (r *WishRepository) GetByName(ctx context.Context, name string) (*entity.Wish, error) {
	return r.getBy(ctx, "name", name)
}

func (r *WishRepository) getBy(ctx context.Context, column, value string) (*entity.Wish, error) {
	w := &entity.Wish{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, added_at
		FROM wishes
		WHERE `+column+` = $1
		ORDER BY added_at
		LIMIT 1
	`, value)

	if err := row.Scan(&w.ID, &w.Name, &w.Description, &w.AddedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *WishRepository) List(ctx context.Context) ([]*entity.Wish, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, added_at
		FROM wishes
		ORDER BY added_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Wish
	for rows.Next() {
		w := &entity.Wish{}
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WishRepository) Update(ctx context.Context, w *entity.Wish) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE wishes
		SET name = $1, description = $2
		WHERE id = $3
	`, w.Name, w.Description, w.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a catalog entry. The FK from wishlist_wishes is
// RESTRICT, so a concurrent append loses the race cleanly.
func (r *WishRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM wishes WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.WishRepository = (*WishRepository)(nil)

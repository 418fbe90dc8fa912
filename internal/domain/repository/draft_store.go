package repository

import (
	"context"

	"github.com/raihansp/wishwell/internal/domain/entity"
)

// DraftStore holds the session-scoped draft sequence: an ordered list
// of staged wishes keyed by session id. Drafts are ephemeral and never
// visible to other sessions. Append must not lose entries under
// concurrent requests within the same session.
type DraftStore interface {
	Append(ctx context.Context, sessionID string, d entity.DraftWish) error
	List(ctx context.Context, sessionID string) ([]entity.DraftWish, error)
	Clear(ctx context.Context, sessionID string) error
}

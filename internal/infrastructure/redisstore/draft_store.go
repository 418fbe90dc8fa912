package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raihansp/wishwell/internal/domain/entity"
	"github.com/raihansp/wishwell/internal/domain/repository"
)

// DraftStore keeps the session draft as a Redis list of JSON entries.
// RPUSH is atomic, so concurrent appends within one session never lose
// entries; the TTL lets abandoned drafts expire with the session.
type DraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDraftStore(rdb *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{rdb: rdb, ttl: ttl}
}

func draftKey(sessionID string) string {
	return "draft:wishes:" + sessionID
}

func (s *DraftStore) Append(ctx context.Context, sessionID string, d entity.DraftWish) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	key := draftKey(sessionID)
	pipe := s.rdb.Pipeline()
	pipe.RPush(ctx, key, b)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *DraftStore) List(ctx context.Context, sessionID string) ([]entity.DraftWish, error) {
	vals, err := s.rdb.LRange(ctx, draftKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]entity.DraftWish, 0, len(vals))
	for _, v := range vals {
		var d entity.DraftWish
		if err := json.Unmarshal([]byte(v), &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *DraftStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, draftKey(sessionID)).Err()
}

var _ repository.DraftStore = (*DraftStore)(nil)

package cache

import (
	"context"
	"encoding/json"
	"time"
)

// BoardKey is the cache key for the kitchen display board
const BoardKey = "kitchen:board"

// BoardCache caches the serialized kitchen display board (active tickets)
// so every screen poll does not hit the database. The payload is stored as
// raw JSON and handed back to the response writer untouched.
type BoardCache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type NoopBoardCache struct{}

func (NoopBoardCache) Get(_ context.Context, _ string) (json.RawMessage, bool, error) {
	return nil, false, nil
}

func (NoopBoardCache) Set(_ context.Context, _ string, _ json.RawMessage, _ time.Duration) error {
	return nil
}

func (NoopBoardCache) Invalidate(_ context.Context, _ string) error {
	return nil
}

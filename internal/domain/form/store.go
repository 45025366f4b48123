package form

import (
	"context"
	"time"
)

// Store persists ephemeral form sessions.
type Store interface {
	Get(ctx context.Context, id string) (State, bool, error)
	Save(ctx context.Context, state State, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

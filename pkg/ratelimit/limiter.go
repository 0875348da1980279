package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Limiter answers whether an actor has exhausted its budget for an action.
// A true result means the caller must be blocked. Implementations record the
// hit as part of the check, so callers invoke IsLimited exactly once per
// attempt, before any mutation.
//
// Window semantics vary by backend: MemoryLimiter tracks a true sliding
// window, while RedisLimiter approximates it with a fixed window that resets
// when the key's TTL expires. Both block at the same budget; the redis
// variant can admit up to 2x the budget across a window boundary.
type Limiter interface {
	IsLimited(ctx context.Context, key string, maxHits int, window time.Duration) (bool, error)
}

// Key builds the canonical actor/action rate-limit key.
func Key(actorID, action string) string {
	return fmt.Sprintf("%s:%s", actorID, action)
}

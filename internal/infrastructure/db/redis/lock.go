package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	acquireRetryInterval = 50 * time.Millisecond
	releaseTimeout       = 5 * time.Second
)

// releaseScript deletes the lock key only if it still holds our token, so an
// expired-and-reacquired lock is never released by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// Mutex is a minimal cross-instance mutual exclusion primitive backed by
// Redis SET NX with a TTL. It serializes short critical sections, such as the
// count-then-delete window on employee deletion; the TTL bounds the damage of
// a crashed holder.
type Mutex struct {
	client *redis.Client
}

// NewMutex creates a Mutex wrapping the given Redis client.
func NewMutex(client *redis.Client) *Mutex {
	return &Mutex{client: client}
}

// Acquire blocks until the named lock is held or ctx expires, and returns a
// release func. Release is best-effort: if it fails, the TTL reclaims the
// lock.
func (m *Mutex) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	key := "lock:" + name
	token := randomToken()

	for {
		ok, err := m.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", name, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock %s: %w", name, ctx.Err())
		case <-time.After(acquireRetryInterval):
		}
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, m.client, []string{key}, token).Err()
	}
	return release, nil
}

func randomToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: time-derived token, still unique enough for a short TTL
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

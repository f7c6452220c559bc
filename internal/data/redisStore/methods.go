package redisStore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// the expiry is only set by the call that creates the key, so the window is fixed
var incrementWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// IncrementWindow atomically increments key and starts its expiry on the first hit.
func (s *Store) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	return incrementWindowScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Int64()
}

func (s *Store) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.client.PTTL(ctx, key).Result()
}

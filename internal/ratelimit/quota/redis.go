package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "quota:"

// allowScript reads, checks and increments in one round trip. The window
// expiry is set by the first reservation only.
var allowScript = redis.NewScript(`
local used = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
if used >= limit then
	return {0, used, redis.call('PTTL', KEYS[1])}
end
used = redis.call('INCR', KEYS[1])
if used == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return {1, used, redis.call('PTTL', KEYS[1])}
`)

// Redis is a fixed-window limiter shared by every instance using the same
// Redis database.
type Redis struct {
	client redis.Scripter
	limit  int
	period time.Duration
	now    func() time.Time
}

func NewRedis(client redis.Scripter, limit int, period time.Duration) *Redis {
	return &Redis{client: client, limit: limit, period: period, now: time.Now}
}

func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := allowScript.Run(ctx, r.client, []string{keyPrefix + key}, r.limit, r.period.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("quota script: %w", err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("quota script: unexpected reply %v", res)
	}
	d := Decision{
		Allowed: res[0] == 1,
		Used:    int(res[1]),
		Limit:   r.limit,
		ResetAt: r.now().Add(r.period),
	}
	if res[2] > 0 {
		d.ResetAt = r.now().Add(time.Duration(res[2]) * time.Millisecond)
	}
	return d, nil
}

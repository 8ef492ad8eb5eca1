package quota

import (
	"context"
	"time"
)

// Day is the rolling window of the social search quota.
const Day = 24 * time.Hour

// Decision is the outcome of one reservation attempt.
type Decision struct {
	Allowed bool
	Used    int
	Limit   int
	ResetAt time.Time
}

// Limiter reserves request slots inside a fixed window. Allow checks and
// reserves in one atomic step; a denied call reserves nothing.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per key inside a fixed window.
type Store interface {
	// Allow records one hit for key and reports whether it is within limit.
	// remaining is never negative; reset is when the current window ends.
	Allow(ctx context.Context, key string) (allowed bool, remaining int, reset time.Time, err error)
}

type Options struct {
	Limit  int
	Window time.Duration
}

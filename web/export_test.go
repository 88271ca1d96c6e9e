package web

import (
	"context"
	"time"
)

// RunJanitor exposes the idle-session janitor for tests.
func (s *Sessions) RunJanitor(ctx context.Context, interval, idle time.Duration, onReap func(n int)) {
	s.janitor(ctx, interval, idle, onReap)
}

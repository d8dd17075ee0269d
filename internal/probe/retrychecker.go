package probe

import (
	"context"
	"time"

	"github.com/hamed0406/statuswatch/internal/domain"
)

// RetryChecker retries a failing inner check with a fixed cooldown between
// attempts. It returns on the first success; when every attempt fails it
// returns the last failure, never an error.
type RetryChecker struct {
	Inner    Checker
	Retries  int // extra attempts after the first; 2 retries = 3 attempts
	Cooldown time.Duration
}

func (r *RetryChecker) Check(ctx context.Context, t domain.Target) CheckResult {
	attempts := r.Retries + 1
	if attempts < 1 {
		attempts = 1
	}

	var last CheckResult
	for i := 0; i < attempts; i++ {
		last = r.Inner.Check(ctx, t)
		if last.Success {
			return last
		}
		// no cooldown after the final attempt
		if i < attempts-1 && !sleep(ctx, r.Cooldown) {
			break
		}
	}
	return last
}

// sleep waits for d unless ctx is done first; reports whether the full
// cooldown elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

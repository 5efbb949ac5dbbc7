package browser

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Condition is a predicate evaluated against a session while waiting.
type Condition func(ctx context.Context, s Session) (bool, error)

// PresenceOf holds once at least one element matches loc.
func PresenceOf(loc Locator) Condition {
	return func(ctx context.Context, s Session) (bool, error) {
		els, err := s.FindAll(ctx, loc)
		if err != nil {
			return false, err
		}
		return len(els) > 0, nil
	}
}

// TextContains holds once some element matching loc renders text containing want.
func TextContains(loc Locator, want string) Condition {
	return func(ctx context.Context, s Session) (bool, error) {
		els, err := s.FindAll(ctx, loc)
		if err != nil {
			return false, err
		}
		for _, el := range els {
			text, err := el.Text(ctx)
			if err != nil {
				return false, err
			}
			if strings.Contains(text, want) {
				return true, nil
			}
		}
		return false, nil
	}
}

// Poll evaluates cond every interval until it holds, it errors, ctx ends
// or timeout elapses. Backends share it to implement WaitUntil.
func Poll(ctx context.Context, s Session, cond Condition, timeout, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultOptions().PollInterval
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond(ctx, s)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%w after %v", ErrTimeoutExceeded, timeout)
		case <-ticker.C:
		}
	}
}

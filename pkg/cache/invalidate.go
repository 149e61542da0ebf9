package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// InvalidationDelay is how long after a write the affected keys are dropped
// a second time.
const InvalidationDelay = 500 * time.Millisecond

// Invalidate runs drop now and once more after delay. A read that missed
// before the write and stores the old value after the first pass is removed
// by the second one, so a stale entry lives at most delay.
//
// The second pass ignores cancellation of ctx and only logs its error. With a
// non-positive delay both passes run before Invalidate returns.
func Invalidate(ctx context.Context, delay time.Duration, drop func(context.Context) error) error {
	err := drop(ctx)

	if delay <= 0 {
		if againErr := drop(ctx); err == nil {
			err = againErr
		}
		return err
	}

	detached := context.WithoutCancel(ctx)
	time.AfterFunc(delay, func() {
		if err := drop(detached); err != nil {
			log.Warn().Err(err).Msg("[CACHE] Delayed invalidate failed")
		}
	})

	return err
}

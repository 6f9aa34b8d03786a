package composer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// pollUntil evaluates fn at a fixed cadence until it reports true or the
// ceiling elapses. No backoff: the waits here cover UI settling, where the
// expected latency does not grow with the number of attempts. fn is always
// evaluated at least once.
func pollUntil(ceiling, every time.Duration, fn func() bool) bool {
	if every <= 0 {
		every = 100 * time.Millisecond
	}
	lim := rate.NewLimiter(rate.Every(every), 1)
	deadline := time.Now().Add(ceiling)
	for {
		_ = lim.Wait(context.Background())
		if fn() {
			return true
		}
		if !time.Now().Before(deadline) {
			return false
		}
	}
}

func settle(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

package worker

import (
	"github.com/getsentry/sentry-go"
)

// Go runs f on a new goroutine. A panic in f is recovered and reported to sentry.
func Go(f func()) {
	go func() {
		defer sentry.Recover()
		f()
	}()
}

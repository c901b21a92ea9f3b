// Package goroutine launches goroutines that cannot crash the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"tzsync/internal/shared/logger"
)

// Go runs fn on its own goroutine. A panic is logged with its stack and
// reported as an error. The returned channel yields fn's result once and is
// then closed.
func Go(log logger.Interface, name string, fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				done <- fmt.Errorf("%s panicked: %v", name, r)
			}
		}()
		done <- fn()
	}()
	return done
}

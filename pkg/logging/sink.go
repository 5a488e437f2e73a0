package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker settings for the file sink
const (
	sinkMaxFailures = 3
	sinkRetryAfter  = 30 * time.Second
)

// fallbackWriter sends writes to primary through a circuit breaker. Failed
// writes, and every write while the breaker is open, go to fallback instead,
// so a full disk degrades logging rather than losing it.
type fallbackWriter struct {
	primary  io.Writer
	fallback io.Writer
	breaker  *gobreaker.CircuitBreaker
}

func newFallbackWriter(name string, primary, fallback io.Writer) *fallbackWriter {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     sinkRetryAfter,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= sinkMaxFailures
		},
		// The logger writes through this breaker, so state changes are
		// reported straight to the fallback.
		OnStateChange: func(name string, from, to gobreaker.State) {
			fmt.Fprintf(fallback, "log sink %s: %s -> %s\n", name, from, to)
		},
	}
	return &fallbackWriter{
		primary:  primary,
		fallback: fallback,
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

func (w *fallbackWriter) Write(p []byte) (int, error) {
	_, err := w.breaker.Execute(func() (interface{}, error) {
		n, err := w.primary.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		return n, err
	})
	if err != nil {
		return w.fallback.Write(p)
	}
	return len(p), nil
}

// State reports the breaker state
func (w *fallbackWriter) State() gobreaker.State {
	return w.breaker.State()
}

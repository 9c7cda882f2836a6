package mongodb

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
)

// Breaker wraps collection round-trips with a circuit breaker so that a
// server that went away mid-session fails fast instead of hanging every
// menu action on a driver timeout.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewBreaker builds a breaker tripping after five consecutive failures.
func NewBreaker(name string) *Breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    1 * time.Minute,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		// Business outcomes must not trip the breaker; only transport
		// failures count.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, mongo.ErrNoDocuments) ||
				mongo.IsDuplicateKeyError(err)
		},
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute runs fn through the breaker.
func (b *Breaker) Execute(fn func() (any, error)) (any, error) {
	return b.cb.Execute(fn)
}

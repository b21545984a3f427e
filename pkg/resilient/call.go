// Package resilient wraps calls to external collaborators with retry,
// linear backoff, and lenient parsing of structured responses.
package resilient

import (
	"context"
	"fmt"
	"time"

	retry "github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// Policy controls the retry behavior of a collaborator call.
type Policy struct {
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int

	// BaseDelay scales the linear backoff: attempt n waits n*BaseDelay.
	BaseDelay time.Duration
}

// DefaultPolicy retries twice with a 2s linear backoff.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 2, BaseDelay: 2 * time.Second}
}

// CollaboratorError identifies which external collaborator failed and why,
// after all attempts were exhausted.
type CollaboratorError struct {
	Collaborator string
	Attempts     int
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator %s failed after %d attempts: %v", e.Collaborator, e.Attempts, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// Call invokes fn with retry and linear backoff. The retry loop respects
// context cancellation and schedules no further attempts after it. A parse
// failure inside fn counts as a call failure eligible for retry.
func Call[T any](ctx context.Context, collaborator string, policy Policy, log *zap.Logger, fn func(ctx context.Context) (T, error)) (T, error) {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = DefaultPolicy().BaseDelay
	}
	attempts := policy.MaxRetries + 1

	var out T
	err := retry.Do(
		func() error {
			v, err := fn(ctx)
			if err != nil {
				return err
			}
			out = v
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return time.Duration(n+1) * policy.BaseDelay
		}),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("collaborator call failed, retrying",
				zap.String("collaborator", collaborator),
				zap.Uint("attempt", n+1),
				zap.Int("maxAttempts", attempts),
				zap.Error(err))
		}),
	)
	if err != nil {
		return out, &CollaboratorError{Collaborator: collaborator, Attempts: attempts, Err: err}
	}
	return out, nil
}

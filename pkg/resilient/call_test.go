package resilient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fastPolicy(retries int) Policy {
	return Policy{MaxRetries: retries, BaseDelay: time.Millisecond}
}

func TestCallSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	out, err := Call(context.Background(), "llm", fastPolicy(2), zap.NewNop(),
		func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 1, calls)
}

func TestCallRetriesThenSucceeds(t *testing.T) {
	calls := 0
	out, err := Call(context.Background(), "llm", fastPolicy(2), zap.NewNop(),
		func(ctx context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("transient")
			}
			return 42, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 42, out)
	assert.Equal(t, 3, calls)
}

func TestCallExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("permanently down")
	calls := 0
	_, err := Call(context.Background(), "verifier", fastPolicy(1), zap.NewNop(),
		func(ctx context.Context) (string, error) {
			calls++
			return "", sentinel
		})
	require.Error(t, err)
	assert.Equal(t, 2, calls)

	var collabErr *CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, "verifier", collabErr.Collaborator)
	assert.Equal(t, 2, collabErr.Attempts)
	assert.ErrorIs(t, err, sentinel)
}

func TestCallStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Call(ctx, "llm", fastPolicy(5), zap.NewNop(),
		func(ctx context.Context) (string, error) {
			calls++
			cancel()
			return "", errors.New("boom")
		})
	require.Error(t, err)
	// Cancellation prevents further attempts.
	assert.Equal(t, 1, calls)
}

func TestCallNormalizesPolicy(t *testing.T) {
	calls := 0
	_, err := Call(context.Background(), "llm", Policy{MaxRetries: -3, BaseDelay: -1}, zap.NewNop(),
		func(ctx context.Context) (string, error) {
			calls++
			return "", errors.New("nope")
		})
	require.Error(t, err)
	// Negative retries mean a single attempt.
	assert.Equal(t, 1, calls)
}

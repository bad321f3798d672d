package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("db busy")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_PermanentStopsImmediately(t *testing.T) {
	notFound := errors.New("not found")
	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return Permanent(notFound)
	})
	assert.ErrorIs(t, err, notFound)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Second, func() error { return errors.New("boom") })
	assert.ErrorIs(t, err, context.Canceled)
}

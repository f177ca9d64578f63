package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOnce_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Once(context.Background(), 0, func() error { calls++; return nil })
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestOnce_NoDelayRetriesEvenWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := Once(ctx, 0, func() error {
		calls++
		if calls == 1 {
			return errors.New("boom")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestOnce_RecoversOnSecondTry(t *testing.T) {
	calls := 0
	err := Once(context.Background(), time.Millisecond, func() error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestOnce_SurfacesSecondError(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	calls := 0
	err := Once(context.Background(), 0, func() error {
		calls++
		if calls == 1 {
			return first
		}
		return second
	})
	assert.ErrorIs(t, err, second)
	assert.Equal(t, 2, calls)
}

func TestOnce_CancelledContextSkipsRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := Once(ctx, time.Second, func() error { calls++; return errors.New("boom") })
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, calls)
}

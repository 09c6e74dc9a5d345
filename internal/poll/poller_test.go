package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUntilStopsOnFirstSuccess(t *testing.T) {
	var calls atomic.Int32

	err := Until(context.Background(), Options{Interval: 5 * time.Millisecond}, func(ctx context.Context) (bool, error) {
		return calls.Add(1) >= 3, nil
	})
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())
}

func TestUntilPropagatesCheckError(t *testing.T) {
	boom := errors.New("remote unavailable")
	var calls atomic.Int32

	err := Until(context.Background(), Options{Interval: 5 * time.Millisecond}, func(ctx context.Context) (bool, error) {
		calls.Add(1)
		return false, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, int32(1), calls.Load())
}

func TestUntilTimesOut(t *testing.T) {
	err := Until(context.Background(), Options{
		Interval: 5 * time.Millisecond,
		Timeout:  30 * time.Millisecond,
	}, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestUntilHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- Until(ctx, Options{Interval: 5 * time.Millisecond}, func(ctx context.Context) (bool, error) {
			return false, nil
		})
	}()

	time.Sleep(15 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("poll loop did not stop after cancel")
	}
}

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_RestartsAfterErrorAndPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	restarts := Run(ctx, time.Millisecond, func(ctx context.Context) error {
		switch calls.Add(1) {
		case 1:
			return errors.New("gateway closed")
		case 2:
			panic("handler exploded")
		default:
			cancel()
			<-ctx.Done()
			return ctx.Err()
		}
	})

	if got := calls.Load(); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
	if restarts != 2 {
		t.Fatalf("restarts = %d, want 2", restarts)
	}
}

func TestRun_StopsDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	done := make(chan int)
	go func() {
		done <- Run(ctx, time.Hour, func(context.Context) error {
			calls.Add(1)
			return errors.New("boom")
		})
	}()

	for calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case restarts := <-done:
		if restarts != 0 {
			t.Fatalf("restarts = %d, want 0", restarts)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestRun_CanceledContextReturnsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	restarts := Run(ctx, time.Hour, func(ctx context.Context) error {
		return ctx.Err()
	})
	if restarts != 0 {
		t.Fatalf("restarts = %d, want 0", restarts)
	}
}

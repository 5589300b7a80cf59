// Package supervisor keeps the bot session alive: a session that fails or
// panics is restarted after a fixed delay until the context is canceled.
package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
)

type Session func(ctx context.Context) error

// Run blocks until ctx is done. It returns the number of restarts.
func Run(ctx context.Context, delay time.Duration, session Session) int {
	restarts := 0
	for {
		err := runOnce(ctx, session)
		if ctx.Err() != nil {
			if err != nil {
				slog.Info("session stopped", "reason", ctx.Err(), "error", err)
			}
			return restarts
		}
		if err == nil {
			err = fmt.Errorf("session returned without error")
		}
		slog.Error("session failed, restarting", "error", err, "delay", delay.String(), "restarts", restarts)

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return restarts
		case <-t.C:
		}
		restarts++
	}
}

func runOnce(ctx context.Context, session Session) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session panicked: %v\n%s", r, debug.Stack())
		}
	}()
	return session(ctx)
}

package services

import (
	"context"
	"time"
)

// Base round-trip delays per operation, matching the mock API the stores
// model. Scaled by Config.LatencyFactor; 0 disables them entirely.
const (
	delayLogin    = 800 * time.Millisecond
	delayRegister = 800 * time.Millisecond
	delayList     = 600 * time.Millisecond
	delayGet      = 400 * time.Millisecond
	delayCreate   = 800 * time.Millisecond
	delayUpdate   = 800 * time.Millisecond
	delayDelete   = 500 * time.Millisecond
	delayByAuthor = 600 * time.Millisecond
)

// simulate blocks for the scaled delay or until ctx is done. Operations
// complete in the order their delays elapse, not the order they started.
func simulate(ctx context.Context, base time.Duration, factor float64) error {
	d := time.Duration(float64(base) * factor)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

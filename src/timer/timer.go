package timer

import (
	"context"
	"time"

	"scanvator/src/config"
)

// Timing supplies the simulated durations of the car.
type Timing interface {
	// Transit is the time to travel the given number of floors.
	Transit(floors int) time.Duration
	// Dwell is the time the doors stay open at a stop.
	Dwell() time.Duration
}

// Sleeper suspends the caller. Sleep returns early with ctx.Err() when ctx is cancelled.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Fixed charges a constant time per floor and per stop.
type Fixed struct {
	PerFloor time.Duration
	DoorOpen time.Duration
}

// FromConfig returns the timing configured for a car.
func FromConfig(cfg config.Config) Fixed {
	return Fixed{PerFloor: cfg.TravelDuration, DoorOpen: cfg.DoorOpenDuration}
}

func (f Fixed) Transit(floors int) time.Duration {
	if floors < 0 {
		floors = -floors
	}
	return time.Duration(floors) * f.PerFloor
}

func (f Fixed) Dwell() time.Duration {
	return f.DoorOpen
}

// Clock sleeps on the wall clock.
type Clock struct{}

func (Clock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer stopTimer(t)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Stops the timer and drains a pending tick.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

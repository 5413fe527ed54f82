// Package dispatcher drives one car through its two scan queues and handles emergency interrupts.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"scanvator/src/config"
	"scanvator/src/elev"
	"scanvator/src/queue"
	"scanvator/src/timer"
	"scanvator/src/types"
)

// Dispatcher owns one (state, queue pair) and is the only goroutine that pops from the queues
// or moves the car. Submit, TriggerEmergency and ResetEmergency may be called from anywhere.
type Dispatcher struct {
	cfg     config.Config
	state   *elev.ElevState
	queue   *queue.RequestQueue
	timing  timer.Timing
	sleeper timer.Sleeper
	log     *slog.Logger

	events  chan types.Event
	dropped atomic.Uint64
	wake    chan struct{}
	nextID  atomic.Uint64

	mu    sync.Mutex
	abort context.CancelFunc // cancels the suspend in progress, if any
	leg   leg                // stop being served, read by TimeToServe
}

func New(cfg config.Config, timing timer.Timing, sleeper timer.Sleeper) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		state:   elev.NewElevState(cfg.InitialFloor),
		queue:   queue.New(),
		timing:  timing,
		sleeper: sleeper,
		log:     slog.Default().With("car", cfg.ID),
		events:  make(chan types.Event, cfg.EventBufferSize),
		wake:    make(chan struct{}, 1),
	}
}

// Run serves requests until ctx is cancelled. It sleeps while there is no work and while an
// emergency is active. An internal inconsistency stops the loop and is returned.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.log.Info("Dispatcher started", "floor", d.state.Floor(), "state", d.state.State())
	for {
		err := d.Drain(ctx)
		switch {
		case err == nil:
		case errors.Is(err, types.ErrEmergencyActive):
			d.log.Info("Dispatcher halted until emergency reset", "floor", d.state.Floor())
		case errors.Is(err, types.ErrInternalInconsistency):
			d.log.Error("Dispatcher stopped", "err", err)
			return err
		default:
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.wake:
		}
	}
}

// Drain runs dispatch cycles until both queues are empty and the car is idle.
// It returns ErrEmergencyActive as soon as an emergency is observed.
func (d *Dispatcher) Drain(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.state.EmergencyActive() {
			return fmt.Errorf("%w: car at floor %d", types.ErrEmergencyActive, d.state.Floor())
		}

		done, err := d.cycle(ctx)
		switch {
		case err == nil:
			if done {
				return nil
			}
		case errors.Is(err, types.ErrInterrupted), errors.Is(err, types.ErrEmergencyActive):
			d.log.Debug("Dispatch cycle abandoned", "reason", err)
		default:
			return err
		}
	}
}

// cycle serves one stop. It reports true when no work is left.
func (d *Dispatcher) cycle(ctx context.Context) (bool, error) {
	epoch := d.state.Epoch()

	dir, ok := chooseDirection(d.state.State(), d.queue.HasPending(types.DirUp), d.queue.HasPending(types.DirDown))
	if !ok {
		tr, err := d.state.SetIdle(epoch)
		if err != nil {
			return false, err
		}
		d.publishTransition(tr)
		return true, nil
	}

	req, err := d.queue.PopNext(dir)
	if err != nil {
		if d.state.EmergencyActive() {
			return false, types.ErrEmergencyActive
		}
		return false, fmt.Errorf("%w: %s queue drained under the dispatcher: %v", types.ErrInternalInconsistency, dir, err)
	}
	d.log.Debug("Serving", "request", req, "queue", dir, "floor", d.state.Floor())

	d.setLeg(leg{target: req.Target(), active: true})
	defer d.setLeg(leg{})
	if err := d.travel(ctx, epoch, req.Target()); err != nil {
		return false, err
	}
	return false, d.stop(ctx, epoch)
}

// chooseDirection continues upwards while up work is pending, otherwise serves down, otherwise
// whatever is left.
func chooseDirection(state types.State, upPending, downPending bool) (types.Direction, bool) {
	switch {
	case (state == types.Idle || state == types.MovingUp) && upPending:
		return types.DirUp, true
	case downPending:
		return types.DirDown, true
	case upPending:
		return types.DirUp, true
	}
	return types.DirIdle, false
}

func (d *Dispatcher) travel(ctx context.Context, epoch uint64, floor int) error {
	from := d.state.Floor()
	dir := types.DirectionBetween(from, floor)
	if dir == types.DirIdle {
		return nil
	}

	tr, err := d.state.BeginTransit(epoch, dir)
	if err != nil {
		return err
	}
	d.publishTransition(tr)

	transit := d.timing.Transit(floor - from)
	d.markLeg(false, transit)
	if err := d.suspend(ctx, epoch, transit); err != nil {
		return err
	}
	if err := d.state.CompleteTransit(epoch, floor); err != nil {
		return err
	}
	d.publish(types.Event{Kind: types.EventArrived, Floor: floor})
	return nil
}

// stop opens the doors, dwells and closes them again.
func (d *Dispatcher) stop(ctx context.Context, epoch uint64) error {
	opened, err := d.state.OpenDoor(epoch)
	if err != nil {
		return err
	}
	if opened {
		d.publish(types.Event{Kind: types.EventDoorOpened, Floor: d.state.Floor()})
	}

	d.markLeg(true, d.timing.Dwell())
	if err := d.suspend(ctx, epoch, d.timing.Dwell()); err != nil {
		return err
	}

	closed, err := d.state.CloseDoor(epoch)
	if err != nil {
		return err
	}
	if closed {
		d.publish(types.Event{Kind: types.EventDoorClosed, Floor: d.state.Floor()})
	}
	return nil
}

// suspend sleeps for dur without holding any lock. An emergency cuts the sleep short.
func (d *Dispatcher) suspend(ctx context.Context, epoch uint64, dur time.Duration) error {
	sctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	d.abort = cancel
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.abort = nil
		d.mu.Unlock()
	}()

	// An emergency raised before abort was registered cannot have cancelled sctx.
	if d.state.Epoch() != epoch {
		return types.ErrInterrupted
	}

	if err := d.sleeper.Sleep(sctx, dur); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", types.ErrInterrupted, err)
	}
	return nil
}

// TriggerEmergency forces the car to the safe floor with doors open, empties both queues and
// rejects requests until ResetEmergency. It takes effect immediately and is idempotent.
func (d *Dispatcher) TriggerEmergency() {
	effects := d.state.TriggerEmergency(d.cfg.SafeFloor)
	dropped := d.queue.Suspend()

	d.mu.Lock()
	if d.abort != nil {
		d.abort()
	}
	d.mu.Unlock()

	if !effects.Changed {
		return
	}
	d.log.Warn("Emergency triggered", "from", effects.From, "floor", effects.Floor, "dropped", dropped)
	d.publishTransition(effects.Transition)
	if effects.FloorChanged {
		d.publish(types.Event{Kind: types.EventArrived, Floor: effects.Floor})
	}
	if effects.DoorOpened {
		d.publish(types.Event{Kind: types.EventDoorOpened, Floor: effects.Floor})
	}
}

// ResetEmergency closes the doors and returns the car to Idle at the safe floor.
// It fails with ErrNoEmergency when no emergency is active.
func (d *Dispatcher) ResetEmergency() error {
	tr, doorClosed, err := d.state.ResetEmergency()
	if err != nil {
		return err
	}
	d.queue.Resume()

	d.log.Info("Emergency reset", "floor", d.state.Floor())
	if doorClosed {
		d.publish(types.Event{Kind: types.EventDoorClosed, Floor: d.state.Floor()})
	}
	d.publishTransition(tr)
	d.notify()
	return nil
}

func (d *Dispatcher) Status() Status {
	return Status{
		ID:            d.cfg.ID,
		Car:           d.state.Snapshot(),
		Plan:          d.queue.Plan(),
		DroppedEvents: d.dropped.Load(),
	}
}

func (d *Dispatcher) setLeg(l leg) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.leg = l
}

// markLeg records that a transit or dwell of dur starts now.
func (d *Dispatcher) markLeg(dwelling bool, dur time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.leg.dwelling = dwelling
	d.leg.until = time.Now().Add(dur)
}

func (d *Dispatcher) currentLeg() leg {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.leg
}

// notify wakes Run without blocking. One pending wake-up is enough.
func (d *Dispatcher) notify() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

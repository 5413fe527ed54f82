package dispatcher

import (
	"fmt"
	"slices"
	"time"

	"github.com/tiendc/go-deepcopy"

	"scanvator/src/queue"
	"scanvator/src/types"
)

// TimeToServe estimates how long until the car stops for req if it were submitted now.
// Nothing is enqueued.
func (d *Dispatcher) TimeToServe(req types.Request) (time.Duration, error) {
	durations, err := d.TimeToServeEach([]types.Request{req})
	if err != nil {
		return 0, err
	}
	return durations[0], nil
}

// TimeToServeEach estimates every request on its own against one snapshot of the car.
//   - the stop being served is finished first: remaining transit, then a dwell at its target
//   - the scan then runs on a copy of the plan with the request's stops added
//   - an estimate ends when the car reaches the request's first stop
func (d *Dispatcher) TimeToServeEach(reqs []types.Request) ([]time.Duration, error) {
	status := d.Status()
	if status.Car.EmergencyActive {
		return nil, types.ErrEmergencyActive
	}
	base, head := d.simulation(status)

	durations := make([]time.Duration, len(reqs))
	for i, req := range reqs {
		dir, err := d.route(req)
		if err != nil {
			return nil, err
		}
		// Only hypothetical requests carry ID 0; submitted requests are numbered from 1.
		req.ID = 0
		stops, err := queue.Stops(dir, req)
		if err != nil {
			return nil, err
		}
		duration, err := d.estimate(base, dir, stops)
		if err != nil {
			return nil, fmt.Errorf("estimate %s: %w", req, err)
		}
		durations[i] = head + duration
	}
	return durations, nil
}

// simulation returns the car as it will be once the stop in progress is served,
// and the time until then.
func (d *Dispatcher) simulation(status Status) (*simCar, time.Duration) {
	base := &simCar{
		Floor: status.Car.Floor,
		State: status.Car.State,
		Up:    status.Plan.Up,
		Down:  status.Plan.Down,
	}

	current := d.currentLeg()
	if !current.active {
		return base, 0
	}
	remaining := max(time.Until(current.until), 0)
	if current.dwelling {
		return base, remaining
	}

	var head time.Duration
	if current.until.IsZero() {
		head += d.timing.Transit(current.target - base.Floor)
	} else {
		head += remaining
	}
	head += d.timing.Dwell()
	if moving, ok := types.MovingState(types.DirectionBetween(base.Floor, current.target)); ok {
		base.State = moving
	}
	base.Floor = current.target
	return base, head
}

// estimate runs the scan from base until the first of stops is reached. base is left untouched.
func (d *Dispatcher) estimate(base *simCar, dir types.Direction, stops []types.Request) (time.Duration, error) {
	sim := new(simCar)
	if err := deepcopy.Copy(sim, base); err != nil {
		return 0, fmt.Errorf("copy plan: %w", err)
	}
	sim.add(dir, stops)

	var duration time.Duration
	for {
		next, ok := chooseDirection(sim.State, len(sim.Up) > 0, len(sim.Down) > 0)
		if !ok {
			return 0, fmt.Errorf("%w: simulated scan ran out of stops", types.ErrInternalInconsistency)
		}
		stop := sim.pop(next)

		duration += d.timing.Transit(stop.Target() - sim.Floor)
		if moving, ok := types.MovingState(types.DirectionBetween(sim.Floor, stop.Target())); ok {
			sim.State = moving
		}
		sim.Floor = stop.Target()
		if stop.ID == 0 {
			return duration, nil
		}
		duration += d.timing.Dwell()
	}
}

// add inserts stops behind any equal-ranked stops already planned. It sorts in place.
func (s *simCar) add(dir types.Direction, stops []types.Request) {
	cmp := func(a, b types.Request) int { return queue.ScanCompare(dir, a, b) }
	switch dir {
	case types.DirUp:
		s.Up = append(s.Up, stops...)
		slices.SortStableFunc(s.Up, cmp)
	case types.DirDown:
		s.Down = append(s.Down, stops...)
		slices.SortStableFunc(s.Down, cmp)
	}
}

func (s *simCar) pop(dir types.Direction) types.Request {
	var stop types.Request
	switch dir {
	case types.DirUp:
		stop, s.Up = s.Up[0], s.Up[1:]
	case types.DirDown:
		stop, s.Down = s.Down[0], s.Down[1:]
	}
	return stop
}

package dispatcher

import (
	"fmt"

	"scanvator/src/types"
)

// Submit validates req, assigns it an ID and enqueues it in the queue its direction selects.
//   - a hall call without a destination is routed by where the car is: at or below the call goes up
//   - requests are rejected with ErrEmergencyActive until the emergency is reset
//
// The dispatch loop is woken afterwards.
func (d *Dispatcher) Submit(req types.Request) (types.RequestID, error) {
	dir, err := d.route(req)
	if err != nil {
		return 0, err
	}
	if d.state.EmergencyActive() {
		return 0, fmt.Errorf("%w: rejected %s", types.ErrEmergencyActive, req)
	}

	req.ID = types.RequestID(d.nextID.Add(1))
	switch dir {
	case types.DirUp:
		err = d.queue.EnqueueUp(req)
	case types.DirDown:
		err = d.queue.EnqueueDown(req)
	}
	if err != nil {
		return 0, err
	}

	d.log.Debug("Request queued", "request", req, "queue", dir)
	d.notify()
	return req.ID, nil
}

// SubmitRequest builds a passenger request and submits it. At most one destination may be given.
func (d *Dispatcher) SubmitRequest(origin types.Origin, originFloor int, destination ...int) (types.RequestID, error) {
	req := types.NewRequest(origin, originFloor)
	switch len(destination) {
	case 0:
	case 1:
		req = req.WithDestination(destination[0])
	default:
		return 0, fmt.Errorf("%w: %d destinations given", types.ErrInvalidRequest, len(destination))
	}
	return d.Submit(req)
}

// route checks floors and returns the queue req belongs in.
func (d *Dispatcher) route(req types.Request) (types.Direction, error) {
	if !d.cfg.InRange(req.OriginFloor) {
		return types.DirIdle, fmt.Errorf("%w: origin floor %d outside [%d, %d]", types.ErrInvalidRequest, req.OriginFloor, d.cfg.MinFloor, d.cfg.MaxFloor)
	}
	if req.HasDestination && !d.cfg.InRange(req.DestinationFloor) {
		return types.DirIdle, fmt.Errorf("%w: destination floor %d outside [%d, %d]", types.ErrInvalidRequest, req.DestinationFloor, d.cfg.MinFloor, d.cfg.MaxFloor)
	}

	if dir := req.Direction(); dir != types.DirIdle {
		return dir, nil
	}
	switch req.Origin {
	case types.Inside:
		return types.DirIdle, fmt.Errorf("%w: inside request %s does not travel", types.ErrInvalidRequest, req)
	case types.Outside:
		if req.OriginFloor >= d.state.Floor() {
			return types.DirUp, nil
		}
		return types.DirDown, nil
	}
	return types.DirIdle, fmt.Errorf("%w: unknown origin %d", types.ErrInvalidRequest, req.Origin)
}

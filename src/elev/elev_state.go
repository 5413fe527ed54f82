package elev

import (
	"fmt"

	"scanvator/src/types"
)

// NewElevState creates an idle car with closed doors at floor.
func NewElevState(floor int) *ElevState {
	return &ElevState{
		floor: floor,
		state: types.Idle,
		door:  types.DoorClosed,
	}
}

func (es *ElevState) Floor() int {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.floor
}

func (es *ElevState) State() types.State {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.state
}

func (es *ElevState) Door() types.DoorState {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.door
}

func (es *ElevState) EmergencyActive() bool {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.emergency
}

// Epoch is incremented by every emergency trigger.
func (es *ElevState) Epoch() uint64 {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.epoch
}

func (es *ElevState) Snapshot() types.CarStatus {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return types.CarStatus{
		Floor:           es.floor,
		State:           es.state,
		Door:            es.door,
		EmergencyActive: es.emergency,
		InTransit:       es.inTransit,
	}
}

// BeginTransit moves the car out of its stop towards dir.
//   - doors must be closed
//   - a transit already in progress cannot be redirected, so reversal only happens at a stop
func (es *ElevState) BeginTransit(epoch uint64, dir types.Direction) (Transition, error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	if err := es.checkLocked(epoch); err != nil {
		return Transition{}, err
	}
	if es.door == types.DoorOpen {
		return Transition{}, fmt.Errorf("%w: transit requested with door open at floor %d", types.ErrInternalInconsistency, es.floor)
	}
	if es.inTransit {
		return Transition{}, fmt.Errorf("%w: transit requested while already moving %s", types.ErrInternalInconsistency, es.state)
	}
	to, ok := types.MovingState(dir)
	if !ok {
		return Transition{}, fmt.Errorf("%w: no moving state for direction %s", types.ErrInternalInconsistency, dir)
	}
	es.inTransit = true
	return es.setStateLocked(to), nil
}

// CompleteTransit records arrival at floor. The operating state is kept until the next decision.
func (es *ElevState) CompleteTransit(epoch uint64, floor int) error {
	es.mu.Lock()
	defer es.mu.Unlock()
	if err := es.checkLocked(epoch); err != nil {
		return err
	}
	if !es.inTransit {
		return fmt.Errorf("%w: arrival at %d without transit", types.ErrInternalInconsistency, floor)
	}
	es.inTransit = false
	es.floor = floor
	return nil
}

// OpenDoor opens the doors of a stationary car. Opening open doors is a no-op and returns false.
func (es *ElevState) OpenDoor(epoch uint64) (bool, error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	if err := es.checkLocked(epoch); err != nil {
		return false, err
	}
	if es.inTransit {
		return false, fmt.Errorf("%w: door open requested in transit", types.ErrInternalInconsistency)
	}
	if es.door == types.DoorOpen {
		return false, nil
	}
	es.door = types.DoorOpen
	return true, nil
}

// CloseDoor closes the doors. Closing closed doors is a no-op and returns false.
func (es *ElevState) CloseDoor(epoch uint64) (bool, error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	if err := es.checkLocked(epoch); err != nil {
		return false, err
	}
	if es.door == types.DoorClosed {
		return false, nil
	}
	es.door = types.DoorClosed
	return true, nil
}

// SetIdle parks the car once no work is pending.
func (es *ElevState) SetIdle(epoch uint64) (Transition, error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	if err := es.checkLocked(epoch); err != nil {
		return Transition{}, err
	}
	if es.inTransit {
		return Transition{}, fmt.Errorf("%w: idle requested in transit", types.ErrInternalInconsistency)
	}
	return es.setStateLocked(types.Idle), nil
}

// TriggerEmergency forces the emergency state from any state: car at safeFloor, doors open,
// any transit abandoned. Triggering an active emergency changes nothing.
func (es *ElevState) TriggerEmergency(safeFloor int) EmergencyEffects {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.emergency {
		return EmergencyEffects{Transition: Transition{From: es.state, To: es.state}, Floor: es.floor}
	}
	es.emergency = true
	es.epoch++
	es.inTransit = false

	effects := EmergencyEffects{
		Floor:        safeFloor,
		FloorChanged: es.floor != safeFloor,
		DoorOpened:   es.door != types.DoorOpen,
	}
	es.floor = safeFloor
	es.door = types.DoorOpen
	effects.Transition = es.setStateLocked(types.Emergency)
	return effects
}

// ResetEmergency returns the car to Idle with closed doors at the floor it was forced to.
// It returns whether the doors were closed by the reset.
func (es *ElevState) ResetEmergency() (Transition, bool, error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	if !es.emergency {
		return Transition{}, false, types.ErrNoEmergency
	}
	es.emergency = false
	doorClosed := es.door == types.DoorOpen
	es.door = types.DoorClosed
	return es.setStateLocked(types.Idle), doorClosed, nil
}

func (es *ElevState) checkLocked(epoch uint64) error {
	if es.emergency {
		return types.ErrEmergencyActive
	}
	if epoch != es.epoch {
		return fmt.Errorf("%w: planned in epoch %d, now %d", types.ErrInterrupted, epoch, es.epoch)
	}
	return nil
}

func (es *ElevState) setStateLocked(to types.State) Transition {
	t := Transition{From: es.state, To: to, Changed: es.state != to}
	es.state = to
	return t
}

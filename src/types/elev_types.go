package types

type State int

const (
	Idle State = iota
	MovingUp
	MovingDown
	Emergency
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case MovingUp:
		return "MovingUp"
	case MovingDown:
		return "MovingDown"
	case Emergency:
		return "Emergency"
	}
	return "Undefined"
}

// MovingState maps a direction of travel to the matching moving state.
func MovingState(dir Direction) (State, bool) {
	switch dir {
	case DirUp:
		return MovingUp, true
	case DirDown:
		return MovingDown, true
	}
	return Idle, false
}

type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpen
)

func (d DoorState) String() string {
	switch d {
	case DoorClosed:
		return "Closed"
	case DoorOpen:
		return "Open"
	}
	return "Undefined"
}

// CarStatus is a point-in-time copy of one car's state machine.
type CarStatus struct {
	Floor           int
	State           State
	Door            DoorState
	EmergencyActive bool
	InTransit       bool
}

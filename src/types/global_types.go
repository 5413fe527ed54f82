package types

import "errors"

var (
	ErrInvalidRequest        = errors.New("invalid request")
	ErrEmptyQueue            = errors.New("empty queue")
	ErrEmergencyActive       = errors.New("emergency active")
	ErrNoEmergency           = errors.New("no emergency active")
	ErrInternalInconsistency = errors.New("internal inconsistency")
	// ErrInterrupted is returned to a dispatch cycle that started before the latest emergency.
	ErrInterrupted = errors.New("dispatch cycle interrupted by emergency")
)

// Direction of travel implied by a request, and the key of the two queues.
type Direction int

const (
	DirIdle Direction = iota
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirIdle:
		return "Idle"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	}
	return "Undefined"
}

// Opposite returns the reverse scan direction. Idle has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	}
	return DirIdle
}

// DirectionBetween returns the direction of travel from one floor to another.
func DirectionBetween(from, to int) Direction {
	switch {
	case to > from:
		return DirUp
	case to < from:
		return DirDown
	default:
		return DirIdle
	}
}

// Origin tells where a request was made.
//   - Inside: a rider in the car chose a destination
//   - Outside: a call button was pressed at a floor
type Origin int

const (
	Inside Origin = iota
	Outside
)

func (o Origin) String() string {
	switch o {
	case Inside:
		return "Inside"
	case Outside:
		return "Outside"
	}
	return "Undefined"
}

type ElevatorType int

const (
	Passenger ElevatorType = iota
	Service
)

func (t ElevatorType) String() string {
	switch t {
	case Passenger:
		return "Passenger"
	case Service:
		return "Service"
	}
	return "Undefined"
}

// StopKind separates rider travel from the pickup stops the queue synthesizes for hall calls.
type StopKind int

const (
	Travel StopKind = iota
	Pickup
)

func (k StopKind) String() string {
	switch k {
	case Travel:
		return "Travel"
	case Pickup:
		return "Pickup"
	}
	return "Undefined"
}

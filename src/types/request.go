package types

import "fmt"

type RequestID uint64

// Request is one unit of travel intent. A zero DestinationFloor is a valid floor,
// so HasDestination tells whether it was set.
type Request struct {
	ID               RequestID
	Origin           Origin
	OriginFloor      int
	DestinationFloor int
	HasDestination   bool
	ElevatorType     ElevatorType
	Kind             StopKind
}

// NewRequest creates a passenger request without a destination.
func NewRequest(origin Origin, originFloor int) Request {
	return Request{
		Origin:       origin,
		OriginFloor:  originFloor,
		ElevatorType: Passenger,
		Kind:         Travel,
	}
}

func (r Request) WithDestination(floor int) Request {
	r.DestinationFloor = floor
	r.HasDestination = true
	return r
}

func (r Request) AsService() Request {
	r.ElevatorType = Service
	return r
}

// Direction is Up or Down when the destination differs from the origin, otherwise Idle.
func (r Request) Direction() Direction {
	if !r.HasDestination {
		return DirIdle
	}
	return DirectionBetween(r.OriginFloor, r.DestinationFloor)
}

// Target is the floor the car stops at to serve the request.
func (r Request) Target() int {
	if r.HasDestination {
		return r.DestinationFloor
	}
	return r.OriginFloor
}

func (r Request) IsPickup() bool {
	return r.Kind == Pickup
}

// PickupStop returns the same-floor stop that lets a hall caller board.
func (r Request) PickupStop() Request {
	stop := r
	stop.DestinationFloor = r.OriginFloor
	stop.HasDestination = true
	stop.Kind = Pickup
	return stop
}

func (r Request) String() string {
	switch r.Kind {
	case Pickup:
		return fmt.Sprintf("#%d Pickup(%d)", r.ID, r.OriginFloor)
	case Travel:
		if !r.HasDestination {
			return fmt.Sprintf("#%d %s(%d->?)", r.ID, r.Origin, r.OriginFloor)
		}
		return fmt.Sprintf("#%d %s(%d->%d)", r.ID, r.Origin, r.OriginFloor, r.DestinationFloor)
	}
	return fmt.Sprintf("#%d Unknown", r.ID)
}

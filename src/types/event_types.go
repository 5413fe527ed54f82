package types

import (
	"fmt"
	"time"
)

type EventKind int

const (
	EventDoorOpened EventKind = iota
	EventDoorClosed
	EventArrived
	EventStateChanged
)

func (k EventKind) String() string {
	switch k {
	case EventDoorOpened:
		return "DoorOpened"
	case EventDoorClosed:
		return "DoorClosed"
	case EventArrived:
		return "Arrived"
	case EventStateChanged:
		return "StateChanged"
	}
	return "UnknownEvent"
}

// Event is emitted to the presentation layer. Floor is set for EventDoorOpened and EventArrived,
// From/To for EventStateChanged.
type Event struct {
	Kind      EventKind
	Floor     int
	From      State
	To        State
	Timestamp time.Time
}

func (e Event) String() string {
	switch e.Kind {
	case EventDoorOpened, EventArrived:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Floor)
	case EventDoorClosed:
		return "DoorClosed()"
	case EventStateChanged:
		return fmt.Sprintf("StateChanged(%s, %s)", e.From, e.To)
	}
	return e.Kind.String()
}

// State types are defined in elev package to make method receivers possible in elev_state.go.
package elev

import (
	"sync"

	"scanvator/src/types"
)

// ElevState is the state machine of one car: operating state, door, floor and emergency flag.
// The dispatch loop is its only regular writer; emergency trigger and reset are applied from
// any goroutine. Every regular mutation carries the epoch it was planned under.
type ElevState struct {
	mu        sync.RWMutex
	floor     int
	state     types.State
	door      types.DoorState
	emergency bool
	inTransit bool
	epoch     uint64
}

// Transition reports a change of operating state.
type Transition struct {
	From    types.State
	To      types.State
	Changed bool
}

// EmergencyEffects lists what an emergency trigger actually changed, for event publishing.
type EmergencyEffects struct {
	Transition
	Floor        int
	FloorChanged bool
	DoorOpened   bool
}

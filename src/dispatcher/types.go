package dispatcher

import (
	"time"

	"scanvator/src/queue"
	"scanvator/src/types"
)

// Status is a point-in-time view of one car for the operator layer.
type Status struct {
	ID            string
	Car           types.CarStatus
	Plan          queue.Plan
	DroppedEvents uint64
}

// simCar is the state TimeToServe runs its scan on. Every estimate works on its own deep copy,
// several estimates share one base.
type simCar struct {
	Floor int
	State types.State
	Up    []types.Request
	Down  []types.Request
}

// leg is the stop the dispatch loop popped and is serving. until is the end of the transit or
// dwell in progress, zero before the first suspend starts.
type leg struct {
	target   int
	active   bool
	dwelling bool
	until    time.Time
}

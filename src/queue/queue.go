// Package queue orders pending requests into two scan queues, one per direction of travel.
package queue

import (
	"container/heap"
	"fmt"
	"slices"
	"sync"

	"scanvator/src/types"
)

// RequestQueue holds the up-bound and down-bound priority collections.
//   - up is ordered by target floor ascending, down by target floor descending
//   - equal targets serve pickup stops before travel requests, then arrival order
//
// All methods are safe for concurrent use. The lock is only held for the duration of one call.
type RequestQueue struct {
	mu        sync.Mutex
	up        *requestHeap
	down      *requestHeap
	seq       uint64
	suspended bool
}

// Plan lists both queues in the order they would be drained.
type Plan struct {
	Up   []types.Request
	Down []types.Request
}

func New() *RequestQueue {
	return &RequestQueue{
		up:   &requestHeap{dir: types.DirUp},
		down: &requestHeap{dir: types.DirDown},
	}
}

func (q *RequestQueue) EnqueueUp(req types.Request) error {
	return q.enqueue(types.DirUp, req)
}

func (q *RequestQueue) EnqueueDown(req types.Request) error {
	return q.enqueue(types.DirDown, req)
}

// enqueue validates req against dir and inserts it together with any synthesized pickup stop.
// Either every stop is inserted or none is.
func (q *RequestQueue) enqueue(dir types.Direction, req types.Request) error {
	stops, err := Stops(dir, req)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.suspended {
		return fmt.Errorf("%w: rejected %s", types.ErrEmergencyActive, req)
	}
	h := q.heapFor(dir)
	for _, stop := range stops {
		q.seq++
		heap.Push(h, item{req: stop, seq: q.seq})
	}
	return nil
}

// Stops returns the stops that serve req in the dir queue, pickup first.
func Stops(dir types.Direction, req types.Request) ([]types.Request, error) {
	if dir != types.DirUp && dir != types.DirDown {
		return nil, fmt.Errorf("%w: no queue for direction %s", types.ErrInvalidRequest, dir)
	}
	if req.IsPickup() {
		if req.Direction() != types.DirIdle {
			return nil, fmt.Errorf("%w: pickup stop %s must not travel", types.ErrInvalidRequest, req)
		}
		return []types.Request{req}, nil
	}

	switch req.Origin {
	case types.Inside:
		if !req.HasDestination {
			return nil, fmt.Errorf("%w: inside request %s without destination", types.ErrInvalidRequest, req)
		}
		if req.DestinationFloor == req.OriginFloor {
			return nil, fmt.Errorf("%w: inside request %s to its own floor", types.ErrInvalidRequest, req)
		}
		if req.Direction() != dir {
			return nil, fmt.Errorf("%w: %s goes %s, not %s", types.ErrInvalidRequest, req, req.Direction(), dir)
		}
		return []types.Request{req}, nil
	case types.Outside:
		// A hall call without a known destination is only a pickup stop.
		if req.Direction() == types.DirIdle {
			return []types.Request{req.PickupStop()}, nil
		}
		if req.Direction() != dir {
			return nil, fmt.Errorf("%w: %s goes %s, not %s", types.ErrInvalidRequest, req, req.Direction(), dir)
		}
		return []types.Request{req.PickupStop(), req}, nil
	}
	return nil, fmt.Errorf("%w: unknown origin %d", types.ErrInvalidRequest, req.Origin)
}

// PeekNext returns the head of the dir queue without removing it.
func (q *RequestQueue) PeekNext(dir types.Direction) (types.Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	h := q.heapFor(dir)
	if h == nil || h.Len() == 0 {
		return types.Request{}, false
	}
	return h.items[0].req, true
}

// PopNext removes and returns the head of the dir queue.
func (q *RequestQueue) PopNext(dir types.Direction) (types.Request, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	h := q.heapFor(dir)
	if h == nil || h.Len() == 0 {
		return types.Request{}, fmt.Errorf("%w: nothing pending %s", types.ErrEmptyQueue, dir)
	}
	return heap.Pop(h).(item).req, nil
}

func (q *RequestQueue) HasPending(dir types.Direction) bool {
	return q.Len(dir) > 0
}

func (q *RequestQueue) Len(dir types.Direction) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	h := q.heapFor(dir)
	if h == nil {
		return 0
	}
	return h.Len()
}

// ClearAll empties both queues and returns the number of stops dropped.
func (q *RequestQueue) ClearAll() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.clearLocked()
}

// Suspend clears both queues and rejects every enqueue with ErrEmergencyActive until Resume.
func (q *RequestQueue) Suspend() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.suspended = true
	return q.clearLocked()
}

func (q *RequestQueue) Resume() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.suspended = false
}

func (q *RequestQueue) Suspended() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.suspended
}

// Plan returns a copy of both queues in drain order.
func (q *RequestQueue) Plan() Plan {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Plan{Up: q.up.sorted(), Down: q.down.sorted()}
}

func (q *RequestQueue) clearLocked() int {
	n := q.up.Len() + q.down.Len()
	q.up.items = nil
	q.down.items = nil
	return n
}

func (q *RequestQueue) heapFor(dir types.Direction) *requestHeap {
	switch dir {
	case types.DirUp:
		return q.up
	case types.DirDown:
		return q.down
	}
	return nil
}

type item struct {
	req types.Request
	seq uint64
}

// requestHeap implements heap.Interface for one scan direction.
type requestHeap struct {
	items []item
	dir   types.Direction
}

func (h *requestHeap) Len() int           { return len(h.items) }
func (h *requestHeap) Less(i, j int) bool { return compare(h.dir, h.items[i], h.items[j]) < 0 }
func (h *requestHeap) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *requestHeap) Push(x any)         { h.items = append(h.items, x.(item)) }

func (h *requestHeap) Pop() any {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	return it
}

func (h *requestHeap) sorted() []types.Request {
	items := slices.Clone(h.items)
	slices.SortFunc(items, func(a, b item) int { return compare(h.dir, a, b) })
	reqs := make([]types.Request, len(items))
	for i, it := range items {
		reqs[i] = it.req
	}
	return reqs
}

// ScanCompare orders two stops of the dir queue by target floor in scan direction, then pickup first.
func ScanCompare(dir types.Direction, a, b types.Request) int {
	ta, tb := a.Target(), b.Target()
	if ta != tb {
		if dir == types.DirDown {
			return tb - ta
		}
		return ta - tb
	}
	if a.IsPickup() != b.IsPickup() {
		if a.IsPickup() {
			return -1
		}
		return 1
	}
	return 0
}

// compare breaks ScanCompare ties by arrival.
func compare(dir types.Direction, a, b item) int {
	if c := ScanCompare(dir, a.req, b.req); c != 0 {
		return c
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}

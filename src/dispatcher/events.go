package dispatcher

import (
	"time"

	"scanvator/src/elev"
	"scanvator/src/types"
)

// Events returns the event stream. It is buffered; when nobody keeps up, events are dropped.
func (d *Dispatcher) Events() <-chan types.Event {
	return d.events
}

func (d *Dispatcher) DroppedEvents() uint64 {
	return d.dropped.Load()
}

// publish never blocks the caller.
func (d *Dispatcher) publish(ev types.Event) {
	ev.Timestamp = time.Now()
	select {
	case d.events <- ev:
	default:
		if n := d.dropped.Add(1); n == 1 || n%100 == 0 {
			d.log.Warn("Event stream full, dropping events", "event", ev, "dropped", n)
		}
	}
}

func (d *Dispatcher) publishTransition(tr elev.Transition) {
	if tr.Changed {
		d.publish(types.Event{Kind: types.EventStateChanged, From: tr.From, To: tr.To})
	}
}

// Package executor carries dispatcher events out to the rider-facing surfaces: console and display panel.
package executor

import (
	"context"

	"scanvator/src/types"
)

// Sink consumes events. Handle must not block for long; the stream behind it drops on overflow.
type Sink interface {
	Handle(ev types.Event)
}

// Run forwards events to every sink, in order, until events is closed or ctx is cancelled.
func Run(ctx context.Context, events <-chan types.Event, sinks ...Sink) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			for _, sink := range sinks {
				sink.Handle(ev)
			}
		}
	}
}

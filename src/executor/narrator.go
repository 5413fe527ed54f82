package executor

import (
	"io"

	"github.com/rs/zerolog"

	"scanvator/src/types"
)

// Narrator tells the rider what the car is doing.
type Narrator struct {
	log zerolog.Logger
}

func NewNarrator(w io.Writer, color bool) *Narrator {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    !color,
	}
	return &Narrator{log: zerolog.New(output).With().Timestamp().Logger()}
}

func (n *Narrator) Handle(ev types.Event) {
	switch ev.Kind {
	case types.EventDoorOpened:
		n.log.Info().Msgf("Doors are OPEN on floor %d", ev.Floor)
	case types.EventDoorClosed:
		n.log.Info().Msg("Doors are CLOSED")
	case types.EventArrived:
		n.log.Info().Int("floor", ev.Floor).Msg("Arrived")
	case types.EventStateChanged:
		e := n.log.Info()
		if ev.To == types.Emergency {
			e = n.log.Warn()
		}
		e.Stringer("from", ev.From).Stringer("to", ev.To).Msg("State changed")
	}
}

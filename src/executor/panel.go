package executor

import (
	"log/slog"

	"scanvator/src/types"
)

// Panel is the car's display: floor indicator, door lamp and stop lamp.
type Panel interface {
	SetFloorIndicator(floor int) error
	SetDoorOpenLamp(on bool) error
	SetStopLamp(on bool) error
}

// PanelSink mirrors events onto a Panel. Write failures are logged and otherwise ignored,
// the panel is display only.
type PanelSink struct {
	panel Panel
}

func NewPanelSink(panel Panel) *PanelSink {
	return &PanelSink{panel: panel}
}

func (p *PanelSink) Handle(ev types.Event) {
	var err error
	switch ev.Kind {
	case types.EventArrived:
		err = p.panel.SetFloorIndicator(ev.Floor)
	case types.EventDoorOpened:
		err = p.panel.SetDoorOpenLamp(true)
	case types.EventDoorClosed:
		err = p.panel.SetDoorOpenLamp(false)
	case types.EventStateChanged:
		switch {
		case ev.To == types.Emergency:
			err = p.panel.SetStopLamp(true)
		case ev.From == types.Emergency:
			err = p.panel.SetStopLamp(false)
		}
	}
	if err != nil {
		slog.Warn("Panel update failed", "event", ev, "err", err)
	}
}

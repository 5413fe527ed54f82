// Package console maps key presses of the interactive front end to dispatcher commands.
package console

import (
	"fmt"
	"time"

	"github.com/eiannone/keyboard"

	"scanvator/src/dispatcher"
	"scanvator/src/types"
	"scanvator/src/utils"
)

type Kind int

const (
	None Kind = iota
	Travel
	Call
	Emergency
	Reset
	Status
	Estimate
	Quit
)

// Command is one complete console instruction.
//   - Travel: a rider inside the car picks floor To
//   - Call: a call button at floor From, optionally with destination To
//   - Estimate: time until a call at floor From would be served
type Command struct {
	Kind           Kind
	From           int
	To             int
	HasDestination bool
}

// Parser assembles commands from single key presses. 'c', 'o' and 't' start multi-key sequences,
// Esc abandons one.
type Parser struct {
	pending rune
	floors  []int
}

// Feed consumes one key press and reports a command once one is complete.
func (p *Parser) Feed(char rune, key keyboard.Key) (Command, bool) {
	switch key {
	case keyboard.KeyCtrlC:
		p.reset()
		return Command{Kind: Quit}, true
	case keyboard.KeyEsc:
		p.reset()
		return Command{}, false
	}

	if char >= '0' && char <= '9' {
		return p.digit(int(char - '0'))
	}

	p.reset()
	switch char {
	case 'c', 'o', 't':
		p.pending = char
	case 'e':
		return Command{Kind: Emergency}, true
	case 'r':
		return Command{Kind: Reset}, true
	case 's':
		return Command{Kind: Status}, true
	case 'q':
		return Command{Kind: Quit}, true
	}
	return Command{}, false
}

// Pending reports whether a multi-key sequence is in progress.
func (p *Parser) Pending() bool {
	return p.pending != 0
}

func (p *Parser) digit(floor int) (Command, bool) {
	switch p.pending {
	case 0:
		return Command{Kind: Travel, To: floor}, true
	case 'c':
		p.reset()
		return Command{Kind: Call, From: floor}, true
	case 't':
		p.reset()
		return Command{Kind: Estimate, From: floor}, true
	case 'o':
		p.floors = append(p.floors, floor)
		if len(p.floors) < 2 {
			return Command{}, false
		}
		cmd := Command{Kind: Call, From: p.floors[0], To: p.floors[1], HasDestination: true}
		p.reset()
		return cmd, true
	}
	return Command{}, false
}

func (p *Parser) reset() {
	p.pending = 0
	p.floors = nil
}

// Controller is the part of the dispatcher the console drives.
type Controller interface {
	SubmitRequest(origin types.Origin, originFloor int, destination ...int) (types.RequestID, error)
	TriggerEmergency()
	ResetEmergency() error
	Status() dispatcher.Status
	TimeToServe(req types.Request) (time.Duration, error)
}

// Apply executes cmd against ctl and returns a line for the operator.
func Apply(ctl Controller, cmd Command) (string, error) {
	switch cmd.Kind {
	case Travel:
		// The car's floor is its departure floor until it arrives, so there is no origin to ride from yet.
		car := ctl.Status().Car
		if car.InTransit {
			return "", fmt.Errorf("%w: car is between floors, pick a floor once it stops", types.ErrInvalidRequest)
		}
		from := car.Floor
		id, err := ctl.SubmitRequest(types.Inside, from, cmd.To)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Request #%d: Inside(%d->%d)", id, from, cmd.To), nil
	case Call:
		var (
			id  types.RequestID
			err error
		)
		if cmd.HasDestination {
			id, err = ctl.SubmitRequest(types.Outside, cmd.From, cmd.To)
		} else {
			id, err = ctl.SubmitRequest(types.Outside, cmd.From)
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Request #%d: call at floor %d", id, cmd.From), nil
	case Emergency:
		ctl.TriggerEmergency()
		return "Emergency triggered", nil
	case Reset:
		if err := ctl.ResetEmergency(); err != nil {
			return "", err
		}
		return "Emergency reset", nil
	case Status:
		return utils.FormatStatus(ctl.Status()), nil
	case Estimate:
		eta, err := ctl.TimeToServe(types.NewRequest(types.Outside, cmd.From))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Call at floor %d: about %s", cmd.From, eta.Round(time.Second)), nil
	}
	return "", nil
}

// Help lists the key bindings.
const Help = `Keys:
  0-9      ride from the current floor to that floor, once the car has stopped
  c N      call the car to floor N
  o N M    call at floor N, going to floor M
  t N      time until a call at floor N would be served
  e        emergency
  r        reset emergency
  s        status
  q        quit`

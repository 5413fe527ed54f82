// This file defines the display side of the elevator simulator protocol.
// It establishes a TCP connection with the elevator server and writes 4-byte commands.
package elevio

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

const (
	cmdFloorIndicator byte = 3
	cmdDoorOpenLamp   byte = 4
	cmdStopLamp       byte = 5
)

var ErrClosed = errors.New("elevio: panel closed")

// Panel drives the floor indicator, door lamp and stop lamp of one simulated car.
// It is safe for concurrent use.
type Panel struct {
	mu   sync.Mutex
	conn net.Conn
}

// Dial connects to the elevator server at addr.
func Dial(addr string, timeout time.Duration) (*Panel, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("elevio: connect to %s: %w", addr, err)
	}
	return &Panel{conn: conn}, nil
}

func (p *Panel) SetFloorIndicator(floor int) error {
	if floor < 0 || floor > 255 {
		return fmt.Errorf("elevio: floor %d cannot be displayed", floor)
	}
	return p.write([4]byte{cmdFloorIndicator, byte(floor), 0, 0})
}

func (p *Panel) SetDoorOpenLamp(value bool) error {
	return p.write([4]byte{cmdDoorOpenLamp, toByte(value), 0, 0})
}

func (p *Panel) SetStopLamp(value bool) error {
	return p.write([4]byte{cmdStopLamp, toByte(value), 0, 0})
}

func (p *Panel) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

func (p *Panel) write(in [4]byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return ErrClosed
	}
	if _, err := p.conn.Write(in[:]); err != nil {
		return fmt.Errorf("elevio: lost connection to elevator server: %w", err)
	}
	return nil
}

func toByte(a bool) byte {
	var b byte = 0
	if a {
		b = 1
	}
	return b
}

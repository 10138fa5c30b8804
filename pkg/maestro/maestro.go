// Package maestro drives a Pololu Maestro USB servo controller as a PWM
// output board.  Only the compact protocol's Set Target command is used.
//
// See https://www.pololu.com/docs/0J40/5.e
package maestro

import (
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"github.com/tigerbot-team/hdrive/pkg/motor"
)

const (
	DefaultBaudRate = 9600

	cmdSetTarget = 0x84

	// Largest channel count of the Maestro family (Mini Maestro 24).
	MaxChannels = 24
)

type Maestro struct {
	lock sync.Mutex
	port io.WriteCloser
}

var _ motor.PWMOutput = (*Maestro)(nil)

// Open opens the Maestro's command port, typically /dev/ttyACM0.
func Open(device string) (*Maestro, error) {
	mode := &serial.Mode{
		BaudRate: DefaultBaudRate,
	}
	s, err := serial.Open(device, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open serial port %s", device)
	}
	return New(s), nil
}

func New(port io.WriteCloser) *Maestro {
	return &Maestro{port: port}
}

// SetPulse sets the channel's target pulse width, with quarter-microsecond
// resolution.
func (m *Maestro) SetPulse(channel int, width time.Duration) error {
	if channel < 0 || channel >= MaxChannels {
		return errors.Errorf("maestro channel out of range: %d", channel)
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	_, err := m.port.Write(SetTargetCommand(uint8(channel), width))
	if err != nil {
		return errors.Wrapf(err, "failed to set maestro channel %d", channel)
	}
	return nil
}

// SetTargetCommand encodes a compact-protocol Set Target.  The target is in
// units of 0.25us split into two 7-bit bytes, low bits first.
func SetTargetCommand(channel uint8, width time.Duration) []byte {
	if width < 0 {
		width = 0
	}
	target := int64(width * 4 / time.Microsecond)
	if target > 0x3fff {
		target = 0x3fff
	}
	return []byte{cmdSetTarget, channel, byte(target & 0x7f), byte((target >> 7) & 0x7f)}
}

func (m *Maestro) Close() error {
	return m.port.Close()
}

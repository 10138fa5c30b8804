package motor

import (
	"fmt"
	"sync"
	"time"
)

// SpeedController takes a normalized command, nominally -1.0 (full reverse)
// to 1.0 (full forward).
type SpeedController interface {
	Set(value float64) error
}

// PWMOutput is a board that can emit a servo-style pulse on a numbered
// channel.
type PWMOutput interface {
	SetPulse(channel int, width time.Duration) error
}

const (
	// Talon SR pulse widths.
	TalonMinPulse    = 1000 * time.Microsecond
	TalonCentrePulse = 1500 * time.Microsecond
	TalonMaxPulse    = 2000 * time.Microsecond
)

// Talon is a PWM speed controller plugged into one channel of a PWMOutput.
type Talon struct {
	out      PWMOutput
	channel  int
	inverted bool
}

var _ SpeedController = (*Talon)(nil)

func NewTalon(out PWMOutput, channel int, inverted bool) *Talon {
	return &Talon{
		out:      out,
		channel:  channel,
		inverted: inverted,
	}
}

func (t *Talon) Channel() int {
	return t.channel
}

func (t *Talon) Set(value float64) error {
	if t.inverted {
		value = -value
	}
	return t.out.SetPulse(t.channel, PulseWidth(value))
}

// PulseWidth maps a speed onto the Talon's pulse range.  The board can't
// emit anything outside the range so out-of-range speeds saturate here.
func PulseWidth(value float64) time.Duration {
	if value > 1 {
		value = 1
	} else if value < -1 {
		value = -1
	}
	halfRange := float64(TalonMaxPulse-TalonCentrePulse)
	return TalonCentrePulse + time.Duration(value*halfRange)
}

// Dummy is a PWMOutput for running without hardware.
type Dummy struct {
	lock   sync.Mutex
	pulses map[int]time.Duration
	quiet  bool
}

var _ PWMOutput = (*Dummy)(nil)

func NewDummy() *Dummy {
	return &Dummy{
		pulses: map[int]time.Duration{},
	}
}

// Quiet stops the dummy from printing every pulse.
func (d *Dummy) Quiet() *Dummy {
	d.quiet = true
	return d
}

func (d *Dummy) SetPulse(channel int, width time.Duration) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if !d.quiet && d.pulses[channel] != width {
		fmt.Printf("DPWM: channel=%d pulse=%v\n", channel, width)
	}
	d.pulses[channel] = width
	return nil
}

// Pulse returns the last pulse width sent to the channel.
func (d *Dummy) Pulse(channel int) (time.Duration, bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	p, ok := d.pulses[channel]
	return p, ok
}

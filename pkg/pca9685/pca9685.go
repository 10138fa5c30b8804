package pca9685

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/io/i2c"
	"periph.io/x/periph/conn/physic"

	"github.com/tigerbot-team/hdrive/pkg/motor"
)

const (
	DefaultAddr = 0x40

	RegMode1 = 0x00
	RegMode2 = 0x01

	// Each PWM output has two 16-bit (low byte first) registers.
	// First register is the on time, second is the off time.
	RegLEDBase = 0x06

	RegPreScale = 0xfe // Pre-scaler for PWM frequency.
	RegTestMode = 0xff

	OscillatorFrequency = 25 * physic.MegaHertz
	DefaultFrequency    = 50 * physic.Hertz

	PWMMax = 4095

	NumChannels = 16

	ServoMinPulseDuration = 1000 * time.Microsecond
	ServoMaxPulseDuration = 2000 * time.Microsecond
)

type Interface interface {
	motor.PWMOutput
	Configure() error
	SetServo(port int, value float64) error
	SetPWM(port int, value float64) error
	Close() error
}

// port is the register-level view of the chip.  Implemented by the x/exp
// devfs device directly and by periphPort.
type port interface {
	WriteReg(reg byte, buf []byte) error
	Close() error
}

type PCA9685 struct {
	dev       port
	frequency physic.Frequency
}

var _ Interface = (*PCA9685)(nil)

// New opens the chip through the kernel's i2c-dev interface, e.g. /dev/i2c-1.
func New(deviceFile string) (*PCA9685, error) {
	dev, err := i2c.Open(&i2c.Devfs{Dev: deviceFile}, DefaultAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open PCA9685 on %s", deviceFile)
	}
	return newWithPort(dev), nil
}

func newWithPort(dev port) *PCA9685 {
	return &PCA9685{
		dev:       dev,
		frequency: DefaultFrequency,
	}
}

// PreScale returns the pre-scaler register value for the given output
// frequency.
func PreScale(f physic.Frequency) byte {
	return byte(math.Round(float64(OscillatorFrequency)/(float64(f)*(PWMMax+1))) - 1)
}

func (p *PCA9685) Configure() (err error) {
	// Put device to sleep.
	err = p.dev.WriteReg(RegMode1, []byte{0x11})
	if err != nil {
		return
	}
	// Update pre-scaler for 50Hz.
	err = p.dev.WriteReg(RegPreScale, []byte{PreScale(p.frequency)})
	if err != nil {
		return
	}
	// Trigger a reset
	err = p.dev.WriteReg(RegMode1, []byte{0x01})
	if err != nil {
		return
	}
	// Required delay after reset.
	time.Sleep(1 * time.Millisecond)
	// Enable.
	err = p.dev.WriteReg(RegMode1, []byte{0x81})
	return
}

// SetPulse holds the channel high for width at the start of every period.
func (p *PCA9685) SetPulse(port int, width time.Duration) error {
	if port < 0 || port >= NumChannels {
		return errors.Errorf("PWM port out of range: %d", port)
	}
	return p.writeOffTime(port, PulseTicks(width, Period(p.frequency)))
}

// Period returns the length of one PWM cycle.
func Period(f physic.Frequency) time.Duration {
	return time.Duration(float64(time.Second) * float64(physic.Hertz) / float64(f))
}

// PulseTicks converts a pulse width into a count of the chip's 4096 ticks per
// period, clamped to the period.
func PulseTicks(width, period time.Duration) uint16 {
	if width <= 0 {
		return 0
	}
	if width >= period {
		return PWMMax
	}
	return uint16(float64(PWMMax+1) * float64(width) / float64(period))
}

func (p *PCA9685) SetServo(port int, value float64) error {
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	width := ServoMinPulseDuration + time.Duration(value*float64(ServoMaxPulseDuration-ServoMinPulseDuration))
	return p.SetPulse(port, width)
}

func (p *PCA9685) SetPWM(port int, value float64) error {
	if port < 0 || port >= NumChannels {
		fmt.Println("PWM port out of range: ", port)
		return nil
	}
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	return p.writeOffTime(port, uint16(PWMMax*value))
}

func (p *PCA9685) writeOffTime(port int, pwmValue uint16) error {
	addr := RegLEDBase + port*4
	return p.dev.WriteReg(byte(addr), []byte{0, 0, byte(pwmValue & 0xff), byte(pwmValue >> 8)})
}

func (p *PCA9685) Close() error {
	return p.dev.Close()
}

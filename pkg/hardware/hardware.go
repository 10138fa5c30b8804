package hardware

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/tigerbot-team/hdrive/pkg/config"
	"github.com/tigerbot-team/hdrive/pkg/maestro"
	"github.com/tigerbot-team/hdrive/pkg/motor"
	"github.com/tigerbot-team/hdrive/pkg/pca9685"
)

// Hardware owns the PWM board the speed controllers are plugged into.
type Hardware struct {
	output   motor.PWMOutput
	closer   io.Closer
	channels []int
}

// New opens the motor back end named in the config.
func New(cfg config.Config) (*Hardware, error) {
	var channels []int
	for _, m := range cfg.Ports.Motors() {
		channels = append(channels, m.Channel)
	}

	switch cfg.Motors.Backend {
	case config.BackendPCA9685:
		var (
			board *pca9685.PCA9685
			err   error
		)
		if cfg.Motors.I2CDriver == config.I2CDriverPeriph {
			board, err = pca9685.NewPeriph(cfg.Motors.I2CBus)
		} else {
			board, err = pca9685.New(cfg.Motors.I2CBus)
		}
		if err != nil {
			return nil, err
		}
		if err := board.Configure(); err != nil {
			board.Close()
			return nil, errors.Wrap(err, "failed to configure PCA9685")
		}
		fmt.Println("HW: PCA9685 on", cfg.Motors.I2CBus)
		return newHardware(board, board, channels), nil
	case config.BackendMaestro:
		m, err := maestro.Open(cfg.Motors.SerialPort)
		if err != nil {
			return nil, err
		}
		fmt.Println("HW: Maestro on", cfg.Motors.SerialPort)
		return newHardware(m, m, channels), nil
	case config.BackendDummy:
		fmt.Println("HW: Using dummy PWM output")
		return NewDummy(channels), nil
	}
	return nil, errors.Errorf("unknown motor backend %q", cfg.Motors.Backend)
}

func NewDummy(channels []int) *Hardware {
	return newHardware(motor.NewDummy(), nil, channels)
}

func newHardware(output motor.PWMOutput, closer io.Closer, channels []int) *Hardware {
	return &Hardware{
		output:   output,
		closer:   closer,
		channels: channels,
	}
}

func (h *Hardware) Output() motor.PWMOutput {
	return h.output
}

// StopMotors sends the neutral pulse to every motor channel.
func (h *Hardware) StopMotors() error {
	var firstErr error
	for _, ch := range h.channels {
		if err := h.output.SetPulse(ch, motor.TalonCentrePulse); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *Hardware) Shutdown() {
	fmt.Println("HW: Stopping motors")
	if err := h.StopMotors(); err != nil {
		fmt.Println("HW: Failed to stop motors:", err)
	}
	if h.closer != nil {
		if err := h.closer.Close(); err != nil {
			fmt.Println("HW: Failed to close motor output:", err)
		}
	}
}

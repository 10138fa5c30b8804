package drive

import (
	"github.com/pkg/errors"

	"github.com/tigerbot-team/hdrive/pkg/motor"
	"github.com/tigerbot-team/hdrive/pkg/ports"
)

// Drive is the H-drive base.  The drive motors push the robot forwards and
// backwards (think of them as the two sides of a tank drive); the strafe
// motors push it sideways.  Rotate the base 90 degrees and the pairs swap
// roles.
//
// Every setter writes straight through to the speed controllers.  Nothing is
// clamped: speed+turn can exceed 1.0 and that's what the controller gets.
type Drive struct {
	leftDrive   motor.SpeedController
	rightDrive  motor.SpeedController
	leftStrafe  motor.SpeedController
	rightStrafe motor.SpeedController

	outputs Outputs
}

type Motors struct {
	LeftDrive   motor.SpeedController
	RightDrive  motor.SpeedController
	LeftStrafe  motor.SpeedController
	RightStrafe motor.SpeedController
}

// Outputs holds the last value commanded on each motor.
type Outputs struct {
	LeftDrive   float64
	RightDrive  float64
	LeftStrafe  float64
	RightStrafe float64
}

func New(m Motors) *Drive {
	return &Drive{
		leftDrive:   m.LeftDrive,
		rightDrive:  m.RightDrive,
		leftStrafe:  m.LeftStrafe,
		rightStrafe: m.RightStrafe,
	}
}

// NewFromPorts creates a Talon on each channel of the port map.  inverted
// holds the logical names (see ports.Name*) of motors that are mounted
// backwards.
func NewFromPorts(p ports.Map, out motor.PWMOutput, inverted map[string]bool) *Drive {
	return New(Motors{
		LeftDrive:   motor.NewTalon(out, p.LeftDriveMotor, inverted[ports.NameLeftDrive]),
		RightDrive:  motor.NewTalon(out, p.RightDriveMotor, inverted[ports.NameRightDrive]),
		LeftStrafe:  motor.NewTalon(out, p.LeftStrafeMotor, inverted[ports.NameLeftStrafe]),
		RightStrafe: motor.NewTalon(out, p.RightStrafeMotor, inverted[ports.NameRightStrafe]),
	})
}

// SetDrive sets the left and right drive motors independently.
func (d *Drive) SetDrive(left, right float64) error {
	if err := d.SetLeftDrive(left); err != nil {
		return err
	}
	return d.SetRightDrive(right)
}

// SetStrafe sets the left and right strafe motors independently.
func (d *Drive) SetStrafe(left, right float64) error {
	if err := d.SetLeftStrafe(left); err != nil {
		return err
	}
	return d.SetRightStrafe(right)
}

// SetDriveSpeedTurn mixes a speed and a turn onto the drive motors.  Speed 0
// with a non-zero turn turns in place.
func (d *Drive) SetDriveSpeedTurn(speed, turn float64) error {
	return d.SetDrive(speed+turn, speed-turn)
}

// SetStrafeSpeedTurn is SetDriveSpeedTurn for the strafe motors.
func (d *Drive) SetStrafeSpeedTurn(speed, turn float64) error {
	return d.SetStrafe(speed+turn, speed-turn)
}

// SetTurn spins the robot in place: with every motor pushing the same way
// round, the base rotates.
func (d *Drive) SetTurn(turn float64) error {
	if err := d.SetDrive(turn, turn); err != nil {
		return err
	}
	return d.SetStrafe(turn, turn)
}

func (d *Drive) SetLeftDrive(value float64) error {
	return d.set(d.leftDrive, &d.outputs.LeftDrive, ports.NameLeftDrive, value)
}

func (d *Drive) SetRightDrive(value float64) error {
	return d.set(d.rightDrive, &d.outputs.RightDrive, ports.NameRightDrive, value)
}

func (d *Drive) SetLeftStrafe(value float64) error {
	return d.set(d.leftStrafe, &d.outputs.LeftStrafe, ports.NameLeftStrafe, value)
}

func (d *Drive) SetRightStrafe(value float64) error {
	return d.set(d.rightStrafe, &d.outputs.RightStrafe, ports.NameRightStrafe, value)
}

// Reset stops all four motors.  Every motor gets the zero even if an earlier
// one fails; the first error is returned.
func (d *Drive) Reset() error {
	var firstErr error
	for _, set := range []func(float64) error{
		d.SetLeftDrive,
		d.SetRightDrive,
		d.SetLeftStrafe,
		d.SetRightStrafe,
	} {
		if err := set(0); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (d *Drive) Outputs() Outputs {
	return d.outputs
}

func (d *Drive) set(sc motor.SpeedController, slot *float64, name string, value float64) error {
	*slot = value
	if err := sc.Set(value); err != nil {
		return errors.Wrapf(err, "failed to set %s to %v", name, value)
	}
	return nil
}

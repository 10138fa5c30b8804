package ports

import (
	"github.com/pkg/errors"
)

// Map records which physical channel each device is plugged into.  It is
// built once at start of day and handed to the drive by value.
type Map struct {
	// PWM channels.
	LeftDriveMotor   int `yaml:"leftDriveMotor"`
	RightDriveMotor  int `yaml:"rightDriveMotor"`
	LeftStrafeMotor  int `yaml:"leftStrafeMotor"`
	RightStrafeMotor int `yaml:"rightStrafeMotor"`

	// Joystick index, /dev/input/js<n>.
	DriveController int `yaml:"driveController"`
}

const (
	NameLeftDrive   = "leftDriveMotor"
	NameRightDrive  = "rightDriveMotor"
	NameLeftStrafe  = "leftStrafeMotor"
	NameRightStrafe = "rightStrafeMotor"
)

// Default returns the wiring of the practice base.
func Default() Map {
	return Map{
		LeftDriveMotor:   0,
		RightDriveMotor:  1,
		LeftStrafeMotor:  2,
		RightStrafeMotor: 3,
		DriveController:  0,
	}
}

type Motor struct {
	Name    string
	Channel int
}

// Motors returns the four motor channels in left-drive, right-drive,
// left-strafe, right-strafe order.
func (m Map) Motors() []Motor {
	return []Motor{
		{NameLeftDrive, m.LeftDriveMotor},
		{NameRightDrive, m.RightDriveMotor},
		{NameLeftStrafe, m.LeftStrafeMotor},
		{NameRightStrafe, m.RightStrafeMotor},
	}
}

// Validate checks that every motor has its own channel in [0, maxChannel].
func (m Map) Validate(maxChannel int) error {
	used := map[int]string{}
	for _, motor := range m.Motors() {
		if motor.Channel < 0 || motor.Channel > maxChannel {
			return errors.Errorf("%s: channel %d out of range 0-%d", motor.Name, motor.Channel, maxChannel)
		}
		if other, ok := used[motor.Channel]; ok {
			return errors.Errorf("%s and %s share channel %d", other, motor.Name, motor.Channel)
		}
		used[motor.Channel] = motor.Name
	}
	if m.DriveController < 0 {
		return errors.Errorf("driveController: bad joystick index %d", m.DriveController)
	}
	return nil
}

// IsMotorName returns true if name is one of the four logical motor names.
func IsMotorName(name string) bool {
	switch name {
	case NameLeftDrive, NameRightDrive, NameLeftStrafe, NameRightStrafe:
		return true
	}
	return false
}

package robot

import (
	"fmt"

	"github.com/tigerbot-team/hdrive/pkg/deadband"
	"github.com/tigerbot-team/hdrive/pkg/iterative"
)

// Drive is the part of the drive base the robot loop uses.
type Drive interface {
	SetDrive(left, right float64) error
	SetStrafe(left, right float64) error
	Reset() error
}

// Controller is the driver's gamepad.  Axes are normalized, with up and left
// negative.
type Controller interface {
	LeftYAxis() float64
	RightXAxis() float64
}

// Robot drives the H-drive from the gamepad: left stick forwards/backwards,
// right stick sideways.
type Robot struct {
	drive      Drive
	controller Controller
	deadBand   float64
}

var _ iterative.Robot = (*Robot)(nil)

func New(drive Drive, controller Controller, deadBand float64) *Robot {
	return &Robot{
		drive:      drive,
		controller: controller,
		deadBand:   deadBand,
	}
}

func (r *Robot) OnInit() error {
	// Make sure everything starts stopped.
	return r.drive.Reset()
}

func (r *Robot) OnPhaseStart(phase iterative.Phase) error {
	switch phase {
	case iterative.Disabled:
		fmt.Println("Robot: disabled, stopping motors")
		return r.drive.Reset()
	case iterative.Teleop:
		fmt.Println("Robot: teleop enabled")
	}
	return nil
}

// OnTick samples the sticks and drives straight.  Small stick movement is
// inevitable at rest, so readings inside the dead-band are zeroed.  Stick up
// reads negative, hence the negation.
func (r *Robot) OnTick() error {
	driveSpeed := -deadband.Apply(r.controller.LeftYAxis(), r.deadBand)
	strafeSpeed := -deadband.Apply(r.controller.RightXAxis(), r.deadBand)
	if err := r.drive.SetDrive(driveSpeed, driveSpeed); err != nil {
		return err
	}
	return r.drive.SetStrafe(strafeSpeed, strafeSpeed)
}

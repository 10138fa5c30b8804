package joystick

import "sync"

const (
	maxAxes    = 8
	maxButtons = 16
)

// Gamepad holds the latest reading of each axis and button.  Events are fed
// in by the reader goroutine; the robot loop samples it once per tick.
type Gamepad struct {
	lock    sync.Mutex
	axes    [maxAxes]int16
	buttons [maxButtons]bool
}

func NewGamepad() *Gamepad {
	return &Gamepad{}
}

func (g *Gamepad) OnJoystickEvent(event *Event) {
	g.lock.Lock()
	defer g.lock.Unlock()
	switch event.Type {
	case EventTypeAxis:
		if int(event.Number) < maxAxes {
			g.axes[event.Number] = event.Value
		}
	case EventTypeButton:
		if int(event.Number) < maxButtons {
			g.buttons[event.Number] = event.Value != 0
		}
	}
}

// Axis returns the normalized reading of axis n, 0 for axes we don't track.
func (g *Gamepad) Axis(n int) float64 {
	if n < 0 || n >= maxAxes {
		return 0
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	return Normalize(g.axes[n])
}

func (g *Gamepad) Button(n int) bool {
	if n < 0 || n >= maxButtons {
		return false
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.buttons[n]
}

func (g *Gamepad) LeftXAxis() float64 { return g.Axis(AxisLStickX) }
func (g *Gamepad) LeftYAxis() float64 { return g.Axis(AxisLStickY) }
func (g *Gamepad) RightXAxis() float64 { return g.Axis(AxisRStickX) }
func (g *Gamepad) RightYAxis() float64 { return g.Axis(AxisRStickY) }

package iterative

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRobot struct {
	calls   []string
	tickErr error
}

func (r *recordingRobot) OnInit() error {
	r.calls = append(r.calls, "init")
	return nil
}

func (r *recordingRobot) OnPhaseStart(phase Phase) error {
	r.calls = append(r.calls, "start-"+phase.String())
	return nil
}

func (r *recordingRobot) OnTick() error {
	r.calls = append(r.calls, "tick")
	return r.tickErr
}

type harness struct {
	s      *Scheduler
	ticks  chan time.Time
	phases chan Phase
	cancel context.CancelFunc
	done   chan error
}

func start(t *testing.T, robot Robot) *harness {
	h := &harness{
		s:      New(robot, 0),
		ticks:  make(chan time.Time),
		phases: make(chan Phase),
		done:   make(chan error, 1),
	}
	h.s.newTicker = func(d time.Duration) (<-chan time.Time, func()) {
		if d == WatchdogInterval {
			return nil, func() {}
		}
		assert.Equal(t, DefaultPeriod, d)
		return h.ticks, func() {}
	}
	var ctx context.Context
	ctx, h.cancel = context.WithCancel(context.Background())
	go func() {
		h.done <- h.s.Run(ctx, h.phases)
	}()
	return h
}

func (h *harness) tick() {
	h.ticks <- time.Now()
}

func (h *harness) stop(t *testing.T) error {
	h.cancel()
	select {
	case err := <-h.done:
		return err
	case <-time.After(time.Second):
		t.Fatal("Scheduler didn't stop")
		return nil
	}
}

func TestLifecycle(t *testing.T) {
	r := &recordingRobot{}
	h := start(t, r)

	// Ticks while disabled are dropped.
	h.tick()
	h.phases <- Teleop
	h.tick()
	h.tick()
	h.phases <- Teleop // No change.
	h.phases <- Disabled
	h.tick()
	h.phases <- Teleop
	h.tick()

	err := h.stop(t)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{
		"init",
		"start-disabled",
		"start-teleop",
		"tick",
		"tick",
		"start-disabled",
		"start-teleop",
		"tick",
		// Shutdown disables the robot.
		"start-disabled",
	}, r.calls)
	assert.Equal(t, uint64(3), h.s.Ticks())
	assert.Equal(t, Active, h.s.State())
	assert.Equal(t, Disabled, h.s.Phase())
}

func TestIdleUntilFirstTick(t *testing.T) {
	r := &recordingRobot{}
	h := start(t, r)
	h.tick()
	h.phases <- Disabled
	require.ErrorIs(t, h.stop(t), context.Canceled)
	assert.Equal(t, Idle, h.s.State())
	assert.Equal(t, []string{"init", "start-disabled"}, r.calls)
}

func TestTickErrorIsFatal(t *testing.T) {
	r := &recordingRobot{tickErr: errors.New("motor bus down")}
	h := start(t, r)
	h.phases <- Teleop
	h.tick()

	select {
	case err := <-h.done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "motor bus down")
	case <-time.After(time.Second):
		t.Fatal("Scheduler didn't stop on tick error")
	}
	h.cancel()
}

type failingInit struct{ recordingRobot }

func (f *failingInit) OnInit() error {
	return fmt.Errorf("no hardware")
}

func TestInitError(t *testing.T) {
	s := New(&failingInit{}, time.Millisecond)
	err := s.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "robot init failed: no hardware")
}

func TestOverrunStillTicks(t *testing.T) {
	r := &recordingRobot{}
	h := start(t, r)
	var clock time.Time
	h.s.now = func() time.Time {
		clock = clock.Add(30 * time.Millisecond)
		return clock
	}
	h.phases <- Teleop
	h.tick()
	require.ErrorIs(t, h.stop(t), context.Canceled)
	assert.Equal(t, uint64(1), h.s.Ticks())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "teleop", Teleop.String())
	assert.Equal(t, "disabled", Disabled.String())
	assert.Equal(t, "unknown(7)", Phase(7).String())
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "active", Active.String())
}

package iterative

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

type Phase int

const (
	Disabled Phase = iota
	Teleop
)

func (p Phase) String() string {
	switch p {
	case Disabled:
		return "disabled"
	case Teleop:
		return "teleop"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

type State int

const (
	// Idle until the first teleop phase starts.
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Robot is the set of lifecycle hooks the scheduler drives.  All hooks are
// called from the scheduler's goroutine, one at a time.
type Robot interface {
	// OnInit is called once, before anything else.
	OnInit() error
	// OnPhaseStart is called on every phase change.
	OnPhaseStart(phase Phase) error
	// OnTick is called once per period while in teleop.
	OnTick() error
}

const (
	DefaultPeriod    = 20 * time.Millisecond
	WatchdogInterval = 5 * time.Second
)

type Scheduler struct {
	robot  Robot
	period time.Duration

	phase Phase
	state State
	ticks uint64

	// Hooks for tests.
	newTicker func(d time.Duration) (<-chan time.Time, func())
	now       func() time.Time
}

func New(robot Robot, period time.Duration) *Scheduler {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Scheduler{
		robot:  robot,
		period: period,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
		now: time.Now,
	}
}

func (s *Scheduler) Phase() Phase { return s.phase }
func (s *Scheduler) State() State { return s.state }
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Run calls OnInit and then loops until ctx is done, applying phase changes
// from phases and ticking the robot while in teleop.  The robot starts
// disabled.  Any hook error stops the loop and is returned.
func (s *Scheduler) Run(ctx context.Context, phases <-chan Phase) error {
	fmt.Println("Scheduler: robot init")
	if err := s.robot.OnInit(); err != nil {
		return errors.Wrap(err, "robot init failed")
	}
	s.phase = Disabled
	if err := s.robot.OnPhaseStart(Disabled); err != nil {
		return errors.Wrap(err, "failed to start disabled phase")
	}

	tickC, stopTicker := s.newTicker(s.period)
	defer stopTicker()
	watchdogC, stopWatchdog := s.newTicker(WatchdogInterval)
	defer stopWatchdog()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("Scheduler: context done, disabling")
			if s.phase != Disabled {
				if err := s.startPhase(Disabled); err != nil {
					fmt.Println("Scheduler: failed to disable on shutdown:", err)
				}
			}
			return ctx.Err()
		case p, ok := <-phases:
			if !ok {
				// No more phase changes coming; keep ticking in the current one.
				phases = nil
				continue
			}
			if p == s.phase {
				continue
			}
			if err := s.startPhase(p); err != nil {
				return err
			}
		case <-tickC:
			if s.phase != Teleop {
				continue
			}
			if err := s.tick(); err != nil {
				return err
			}
		case <-watchdogC:
			fmt.Printf("Scheduler: still running, phase=%v state=%v ticks=%d\n", s.phase, s.state, s.ticks)
		}
	}
}

func (s *Scheduler) startPhase(p Phase) error {
	fmt.Printf("----- %s -----\n", p)
	s.phase = p
	if err := s.robot.OnPhaseStart(p); err != nil {
		return errors.Wrapf(err, "failed to start %v phase", p)
	}
	return nil
}

func (s *Scheduler) tick() error {
	s.state = Active
	start := s.now()
	if err := s.robot.OnTick(); err != nil {
		return errors.Wrap(err, "robot tick failed")
	}
	s.ticks++
	if elapsed := s.now().Sub(start); elapsed > s.period {
		fmt.Printf("Scheduler: loop time of %v overran period %v\n", elapsed, s.period)
	}
	return nil
}

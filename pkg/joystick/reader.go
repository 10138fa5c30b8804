package joystick

import (
	"context"
	"fmt"
	"time"
)

const retryInterval = 1 * time.Second

// Open waits for the device to appear and then reads events from it on a
// background goroutine.  The returned channel is closed when reading stops;
// onStop is called after that.  Returns nil if ctx is done before the device
// shows up.
func Open(ctx context.Context, device string, onStop func()) <-chan *Event {
	firstLog := true
	for ctx.Err() == nil {
		j, err := NewJoystick(device)
		if err != nil {
			if firstLog {
				fmt.Printf("Waiting for joystick: %v.\n", err)
				firstLog = false
			}
			select {
			case <-ctx.Done():
			case <-time.After(retryInterval):
			}
			continue
		}

		fmt.Printf("Opened joystick %s\n", device)
		events := make(chan *Event, 1)
		go func() {
			if onStop != nil {
				defer onStop()
			}
			err := loopReadingEvents(ctx, j, events)
			fmt.Printf("Joystick failed: %v\n", err)
		}()
		return events
	}
	return nil
}

func loopReadingEvents(ctx context.Context, j *Joystick, events chan<- *Event) error {
	defer close(events)
	defer j.Close()
	for ctx.Err() == nil {
		event, err := j.ReadEvent()
		if err != nil {
			fmt.Printf("Failed to read from joystick: %v.\n", err)
			return err
		}
		select {
		case events <- event:
		case <-ctx.Done():
		}
	}
	return ctx.Err()
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tigerbot-team/hdrive/pkg/deadband"
	"github.com/tigerbot-team/hdrive/pkg/joystick"
)

var rootCmd = &cobra.Command{
	Use:   "joytests",
	Short: "Print joystick events and the dead-banded drive axes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		jDev, _ := cmd.Flags().GetString("joystick")
		band, _ := cmd.Flags().GetFloat64("deadband")
		run(jDev, band)
	},
}

func init() {
	jDev := os.Getenv("JOYSTICK_DEVICE")
	if jDev == "" {
		jDev = joystick.DevicePath(0)
	}
	rootCmd.Flags().String("joystick", jDev, "joystick device")
	rootCmd.Flags().Float64("deadband", 0.1, "dead-band threshold")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(jDev string, band float64) {
	// Our global context, we cancel it to trigger shutdown.
	ctx, cancel := context.WithCancel(context.Background())

	// Hook Ctrl-C etc.
	registerSignalHandlers(cancel)

	// Wait for the joystick and kick off a background thread to read from it.
	joystickEvents := joystick.Open(ctx, jDev, cancel)
	gamepad := joystick.NewGamepad()
	for je := range joystickEvents {
		gamepad.OnJoystickEvent(je)
		fmt.Printf("%v drive=%.3f strafe=%.3f\n", je,
			-deadband.Apply(gamepad.LeftYAxis(), band),
			-deadband.Apply(gamepad.RightXAxis(), band))
	}
}

func registerSignalHandlers(cancelFunc context.CancelFunc) {
	// Hook Ctrl-C to cause shut down.
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		s := <-signals
		log.Println("Signal: ", s)
		cancelFunc()
		time.Sleep(2 * time.Second)
		os.Exit(0)
	}()
}

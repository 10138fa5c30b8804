package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tigerbot-team/hdrive/pkg/config"
	"github.com/tigerbot-team/hdrive/pkg/drive"
	"github.com/tigerbot-team/hdrive/pkg/hardware"
	"github.com/tigerbot-team/hdrive/pkg/iterative"
	"github.com/tigerbot-team/hdrive/pkg/joystick"
	"github.com/tigerbot-team/hdrive/pkg/robot"
)

var rootCmd = &cobra.Command{
	Use:   "hdrive",
	Short: "Drive the H-drive base from an Xbox controller",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return run(cfg)
	},
}

func init() {
	rootCmd.Flags().StringP("config", "c", os.Getenv("HDRIVE_CONFIG"), "YAML config file; defaults are used if empty")
	rootCmd.Flags().String("joystick", "", "joystick device, overrides the config (also JOYSTICK_DEVICE)")
	rootCmd.Flags().String("backend", "", "motor backend: pca9685, maestro or dummy")
	rootCmd.Flags().Bool("enable", false, "start in teleop without waiting for the enable button")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if jDev := os.Getenv("JOYSTICK_DEVICE"); jDev != "" {
		cfg.JoystickDevice = jDev
	}
	if cmd.Flags().Changed("joystick") {
		cfg.JoystickDevice, _ = cmd.Flags().GetString("joystick")
	}
	if cmd.Flags().Changed("backend") {
		cfg.Motors.Backend, _ = cmd.Flags().GetString("backend")
	}
	if cmd.Flags().Changed("enable") {
		cfg.AutoEnable, _ = cmd.Flags().GetBool("enable")
	}
	return cfg, cfg.Validate()
}

func run(cfg config.Config) error {
	fmt.Print("---- H-drive ----\n\n")
	fmt.Println("GOMAXPROCS", runtime.GOMAXPROCS(0))
	cfg.Print()

	// Our global context, we cancel it to trigger shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hook Ctrl-C etc.
	registerSignalHandlers(cancel)

	hw, err := hardware.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		fmt.Println("Zeroing motors for shut down")
		hw.Shutdown()
	}()

	// Wait for the joystick and kick off a background thread to read from it.
	joystickEvents := joystick.Open(ctx, cfg.JoystickPath(), cancel)
	if joystickEvents == nil {
		return ctx.Err()
	}

	gamepad := joystick.NewGamepad()
	phases := make(chan iterative.Phase, 1)
	go dispatchJoystickEvents(ctx, joystickEvents, gamepad, phases, cfg.EnableButton, cfg.AutoEnable)

	d := drive.NewFromPorts(cfg.Ports, hw.Output(), cfg.InvertedMotors())
	s := iterative.New(robot.New(d, gamepad, cfg.DeadBand), cfg.TickInterval)
	err = s.Run(ctx, phases)
	if ctx.Err() != nil {
		fmt.Println("Context done, shutting down")
		return nil
	}
	return err
}

// dispatchJoystickEvents feeds the gamepad and turns presses of the enable
// button into phase changes.
func dispatchJoystickEvents(
	ctx context.Context,
	events <-chan *joystick.Event,
	gamepad *joystick.Gamepad,
	phases chan<- iterative.Phase,
	enableButton int,
	autoEnable bool,
) {
	enabled := false
	sendPhase := func() {
		p := iterative.Disabled
		if enabled {
			p = iterative.Teleop
		}
		select {
		case phases <- p:
		case <-ctx.Done():
		}
	}
	if autoEnable {
		enabled = true
		sendPhase()
	}

	for event := range events {
		if event.Type == joystick.EventTypeButton &&
			int(event.Number) == enableButton &&
			event.Value == 1 &&
			!event.Init {
			enabled = !enabled
			fmt.Printf("Enable pressed: enabled=%v\n", enabled)
			sendPhase()
			continue
		}
		gamepad.OnJoystickEvent(event)
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

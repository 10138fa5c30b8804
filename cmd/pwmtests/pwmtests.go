package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tigerbot-team/hdrive/pkg/config"
	"github.com/tigerbot-team/hdrive/pkg/hardware"
	"github.com/tigerbot-team/hdrive/pkg/motor"
)

var rootCmd = &cobra.Command{
	Use:   "pwmtests",
	Short: "Drive individual speed controllers by hand",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("backend") {
			cfg.Motors.Backend, _ = cmd.Flags().GetString("backend")
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		hw, err := hardware.New(cfg)
		if err != nil {
			return err
		}
		defer hw.Shutdown()
		loop(hw.Output())
		return nil
	},
}

func init() {
	rootCmd.Flags().StringP("config", "c", "", "YAML config file")
	rootCmd.Flags().String("backend", "", "motor backend: pca9685, maestro or dummy")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loop(out motor.PWMOutput) {
	fmt.Println(
		`Commands:
    s <n> <speed>   # Set the speed controller on channel n
    p <n> <us>      # Send a raw pulse width

<n>      Channel number
<speed>  Speed -1.0-1.0; 0=stopped
<us>     Pulse width in microseconds; 1500=neutral`)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nFailed to read stdin: ", err)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "s", "p":
			if len(parts) < 3 {
				fmt.Println("Not enough parameters")
				continue
			}
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				fmt.Println("Expected int, not ", parts[1])
				continue
			}
			v, err := strconv.ParseFloat(parts[2], 64)
			if err != nil {
				fmt.Println("Expected float, not ", parts[2])
				continue
			}
			if parts[0] == "s" {
				fmt.Printf("Setting speed %d to %f\n", n, v)
				err = motor.NewTalon(out, n, false).Set(v)
			} else {
				fmt.Printf("Setting pulse %d to %vus\n", n, v)
				err = out.SetPulse(n, time.Duration(v*float64(time.Microsecond)))
			}
			if err != nil {
				fmt.Println("Failed to set output: ", err)
			}
		default:
			fmt.Println("Unknown command", parts[0])
		}
	}
}

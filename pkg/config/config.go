package config

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/tigerbot-team/hdrive/pkg/iterative"
	"github.com/tigerbot-team/hdrive/pkg/joystick"
	"github.com/tigerbot-team/hdrive/pkg/maestro"
	"github.com/tigerbot-team/hdrive/pkg/pca9685"
	"github.com/tigerbot-team/hdrive/pkg/ports"
)

const (
	BackendPCA9685 = "pca9685"
	BackendMaestro = "maestro"
	BackendDummy   = "dummy"

	I2CDriverDevfs  = "devfs"
	I2CDriverPeriph = "periph"

	DefaultDeadBand = 0.1
)

type Config struct {
	Ports        ports.Map     `yaml:"ports"`
	DeadBand     float64       `yaml:"deadBand"`
	TickInterval time.Duration `yaml:"tickInterval"`
	Motors       MotorConfig   `yaml:"motors"`

	// Overrides the device derived from ports.driveController.
	JoystickDevice string `yaml:"joystickDevice,omitempty"`
	// Button that toggles between disabled and teleop.
	EnableButton int `yaml:"enableButton"`
	// Start in teleop rather than waiting for the enable button.
	AutoEnable bool `yaml:"autoEnable"`
}

type MotorConfig struct {
	Backend    string   `yaml:"backend"`
	I2CBus     string   `yaml:"i2cBus"`
	I2CDriver  string   `yaml:"i2cDriver"`
	SerialPort string   `yaml:"serialPort"`
	Inverted   []string `yaml:"inverted,omitempty"`
}

func Default() Config {
	return Config{
		Ports:        ports.Default(),
		DeadBand:     DefaultDeadBand,
		TickInterval: iterative.DefaultPeriod,
		Motors: MotorConfig{
			Backend:    BackendPCA9685,
			I2CBus:     "/dev/i2c-1",
			I2CDriver:  I2CDriverDevfs,
			SerialPort: "/dev/ttyACM0",
		},
		EnableButton: joystick.ButtonStart,
	}
}

// Load reads a YAML file over the defaults.  An empty path gives the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "bad config %s", path)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.DeadBand < 0 || c.DeadBand >= 1 {
		return errors.Errorf("deadBand %v must be in [0, 1)", c.DeadBand)
	}
	if c.TickInterval <= 0 {
		return errors.Errorf("tickInterval %v must be positive", c.TickInterval)
	}
	maxChannel := pca9685.NumChannels - 1
	switch c.Motors.Backend {
	case BackendPCA9685, BackendDummy:
	case BackendMaestro:
		maxChannel = maestro.MaxChannels - 1
	default:
		return errors.Errorf("unknown motor backend %q", c.Motors.Backend)
	}
	switch c.Motors.I2CDriver {
	case I2CDriverDevfs, I2CDriverPeriph:
	default:
		return errors.Errorf("unknown i2cDriver %q", c.Motors.I2CDriver)
	}
	if err := c.Ports.Validate(maxChannel); err != nil {
		return errors.Wrap(err, "bad ports")
	}
	for _, name := range c.Motors.Inverted {
		if !ports.IsMotorName(name) {
			return errors.Errorf("inverted: unknown motor %q", name)
		}
	}
	return nil
}

// InvertedMotors returns the set of motor names that are mounted backwards.
func (c Config) InvertedMotors() map[string]bool {
	inverted := map[string]bool{}
	for _, name := range c.Motors.Inverted {
		inverted[name] = true
	}
	return inverted
}

func (c Config) JoystickPath() string {
	if c.JoystickDevice != "" {
		return c.JoystickDevice
	}
	return joystick.DevicePath(c.Ports.DriveController)
}

// Print dumps the in-use config.
func (c Config) Print() {
	cfgBytes, err := yaml.Marshal(&c)
	if err != nil {
		fmt.Println("Failed to marshal config: ", err)
		return
	}
	fmt.Printf("Config in use:\n%s", cfgBytes)
}

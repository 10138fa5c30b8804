package pca9685

import (
	"github.com/pkg/errors"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

// periphPort adapts a periph.io I2C device to register writes.
type periphPort struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

func (p *periphPort) WriteReg(reg byte, buf []byte) error {
	w := make([]byte, 0, len(buf)+1)
	w = append(w, reg)
	w = append(w, buf...)
	return p.dev.Tx(w, nil)
}

func (p *periphPort) Close() error {
	return p.bus.Close()
}

// NewPeriph opens the chip through periph.io's bus registry.  busName is a
// registry name such as "1" or "I2C1"; empty picks the first bus.
func NewPeriph(busName string) (*PCA9685, error) {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialise periph")
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open I2C bus %q", busName)
	}
	return newWithPort(&periphPort{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: DefaultAddr},
	}), nil
}

package pca9685

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/periph/conn/physic"
)

type regWrite struct {
	reg  byte
	data []byte
}

type fakePort struct {
	writes []regWrite
	closed bool
}

func (f *fakePort) WriteReg(reg byte, buf []byte) error {
	f.writes = append(f.writes, regWrite{reg, append([]byte(nil), buf...)})
	return nil
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

func TestPreScale(t *testing.T) {
	assert.Equal(t, byte(0x79), PreScale(50*physic.Hertz))
	assert.Equal(t, byte(0x03), PreScale(1526*physic.Hertz))
}

func TestPeriod(t *testing.T) {
	assert.Equal(t, 20*time.Millisecond, Period(DefaultFrequency))
}

func TestConfigure(t *testing.T) {
	f := &fakePort{}
	p := newWithPort(f)
	require.NoError(t, p.Configure())
	assert.Equal(t, []regWrite{
		{RegMode1, []byte{0x11}},
		{RegPreScale, []byte{0x79}},
		{RegMode1, []byte{0x01}},
		{RegMode1, []byte{0x81}},
	}, f.writes)
}

func TestPulseTicks(t *testing.T) {
	period := 20 * time.Millisecond
	assert.Equal(t, uint16(0), PulseTicks(0, period))
	assert.Equal(t, uint16(204), PulseTicks(1000*time.Microsecond, period))
	assert.Equal(t, uint16(307), PulseTicks(1500*time.Microsecond, period))
	assert.Equal(t, uint16(409), PulseTicks(2000*time.Microsecond, period))
	assert.Equal(t, uint16(PWMMax), PulseTicks(time.Second, period))
}

func TestSetPulse(t *testing.T) {
	f := &fakePort{}
	p := newWithPort(f)
	require.NoError(t, p.SetPulse(2, 1500*time.Microsecond))
	// 307 = 0x133, off time low byte first.
	assert.Equal(t, []regWrite{{RegLEDBase + 2*4, []byte{0, 0, 0x33, 0x01}}}, f.writes)
}

func TestSetPulseBadPort(t *testing.T) {
	p := newWithPort(&fakePort{})
	assert.Error(t, p.SetPulse(16, time.Millisecond))
	assert.Error(t, p.SetPulse(-1, time.Millisecond))
}

func TestSetServoCentre(t *testing.T) {
	f := &fakePort{}
	p := newWithPort(f)
	require.NoError(t, p.SetServo(0, 0.5))
	assert.Equal(t, []byte{0, 0, 0x33, 0x01}, f.writes[0].data)
}

func TestClose(t *testing.T) {
	f := &fakePort{}
	require.NoError(t, newWithPort(f).Close())
	assert.True(t, f.closed)
}

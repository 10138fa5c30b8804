package maestro

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufferPort struct {
	bytes.Buffer
	closed bool
	err    error
}

func (b *bufferPort) Write(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	return b.Buffer.Write(p)
}

func (b *bufferPort) Close() error {
	b.closed = true
	return nil
}

func TestSetTargetCommand(t *testing.T) {
	// Example from the Maestro manual: 1500us on channel 2 is 6000 = 0x1770.
	assert.Equal(t, []byte{0x84, 0x02, 0x70, 0x2e}, SetTargetCommand(2, 1500*time.Microsecond))
	assert.Equal(t, []byte{0x84, 0x00, 0x00, 0x00}, SetTargetCommand(0, 0))
	assert.Equal(t, []byte{0x84, 0x05, 0x7f, 0x7f}, SetTargetCommand(5, time.Second))
}

func TestSetPulse(t *testing.T) {
	port := &bufferPort{}
	m := New(port)
	require.NoError(t, m.SetPulse(1, 1000*time.Microsecond))
	require.NoError(t, m.SetPulse(3, 2000*time.Microsecond))
	assert.Equal(t, []byte{
		0x84, 0x01, 0x20, 0x1f, // 4000
		0x84, 0x03, 0x40, 0x3e, // 8000
	}, port.Bytes())

	assert.Error(t, m.SetPulse(MaxChannels, time.Millisecond))

	require.NoError(t, m.Close())
	assert.True(t, port.closed)
}

func TestSetPulseWriteError(t *testing.T) {
	m := New(&bufferPort{err: errors.New("unplugged")})
	err := m.SetPulse(0, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unplugged")
}

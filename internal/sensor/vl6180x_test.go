package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

const addr = DefaultVL6180XAddr

func rd(reg uint16, v byte) i2ctest.IO {
	return i2ctest.IO{Addr: addr, W: []byte{byte(reg >> 8), byte(reg)}, R: []byte{v}}
}

func wr(reg uint16, v byte) i2ctest.IO {
	return i2ctest.IO{Addr: addr, W: []byte{byte(reg >> 8), byte(reg), v}}
}

func probeOps() []i2ctest.IO {
	return []i2ctest.IO{rd(regModelID, vl6180xModelID), rd(regFreshOutOfReset, 0)}
}

func rangeOps(mm, status byte) []i2ctest.IO {
	return []i2ctest.IO{
		rd(regResultRangeStatus, 0x01),
		wr(regSysRangeStart, 0x01),
		rd(regResultInterruptStatus, 0x00),
		rd(regResultInterruptStatus, 0x04),
		rd(regResultRangeVal, mm),
		rd(regResultRangeStatus, status),
		wr(regSysInterruptClear, 0x07),
	}
}

func TestVL6180XRange(t *testing.T) {
	bus := &i2ctest.Playback{Ops: append(probeOps(), rangeOps(87, 0x01)...)}
	d, err := NewVL6180X(bus, addr)
	require.NoError(t, err)
	assert.Equal(t, "vl6180x@0x29", d.String())

	mm, err := d.Range()
	require.NoError(t, err)
	assert.Equal(t, 87, mm)
	require.NoError(t, bus.Close())
}

func TestVL6180XOverflowStillReads(t *testing.T) {
	// status 13: range overflow, nothing in view
	bus := &i2ctest.Playback{Ops: append(probeOps(), rangeOps(255, 13<<4)...)}
	d, err := NewVL6180X(bus, addr)
	require.NoError(t, err)
	mm, err := d.Range()
	require.NoError(t, err)
	assert.Equal(t, 255, mm)
}

func TestVL6180XSystemErrorFails(t *testing.T) {
	bus := &i2ctest.Playback{Ops: append(probeOps(), rangeOps(0, 1<<4)...)}
	d, err := NewVL6180X(bus, addr)
	require.NoError(t, err)
	_, err = d.Range()
	assert.ErrorContains(t, err, "range error status 1")
}

func TestVL6180XLoadsTuningWhenFresh(t *testing.T) {
	ops := []i2ctest.IO{rd(regModelID, vl6180xModelID), rd(regFreshOutOfReset, 1)}
	for _, kv := range vl6180xTuning {
		ops = append(ops, wr(kv[0], byte(kv[1])))
	}
	ops = append(ops, wr(regFreshOutOfReset, 0))
	bus := &i2ctest.Playback{Ops: ops}
	_, err := NewVL6180X(bus, addr)
	require.NoError(t, err)
	require.NoError(t, bus.Close())
}

func TestVL6180XWrongModel(t *testing.T) {
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{rd(regModelID, 0x42)}}
	_, err := NewVL6180X(bus, addr)
	assert.ErrorContains(t, err, "unexpected model id")
}

func TestVL6180XSetAddress(t *testing.T) {
	ops := append(probeOps(), wr(regSlaveDeviceAddress, 0x69))
	ops = append(ops, i2ctest.IO{Addr: 0x69, W: []byte{0x00, 0x4D}, R: []byte{0x01}})
	bus := &i2ctest.Playback{Ops: ops}
	d, err := NewVL6180X(bus, addr)
	require.NoError(t, err)
	require.NoError(t, d.SetAddress(0x69))
	assert.Equal(t, "vl6180x@0x69", d.String())

	// later transactions go to the new address
	v, err := d.read8(regResultRangeStatus)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), v)
	require.NoError(t, bus.Close())

	assert.Error(t, d.SetAddress(0x80))
}

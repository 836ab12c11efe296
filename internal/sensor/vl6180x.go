package sensor

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// VL6180X register map (16-bit addresses).
const (
	regModelID               = 0x000
	regSysInterruptClear     = 0x015
	regFreshOutOfReset       = 0x016
	regSysRangeStart         = 0x018
	regResultRangeStatus     = 0x04D
	regResultInterruptStatus = 0x04F
	regResultRangeVal        = 0x062
	regSlaveDeviceAddress    = 0x212

	vl6180xModelID = 0xB4

	// DefaultVL6180XAddr is the factory I2C address.
	DefaultVL6180XAddr uint16 = 0x29

	maxStatusPolls = 200
)

// ST's recommended private settings, applied once after power-up.
var vl6180xTuning = [][2]uint16{
	{0x0207, 0x01}, {0x0208, 0x01}, {0x0096, 0x00}, {0x0097, 0xfd},
	{0x00e3, 0x00}, {0x00e4, 0x04}, {0x00e5, 0x02}, {0x00e6, 0x01},
	{0x00e7, 0x03}, {0x00f5, 0x02}, {0x00d9, 0x05}, {0x00db, 0xce},
	{0x00dc, 0x03}, {0x00dd, 0xf8}, {0x009f, 0x00}, {0x00a3, 0x3c},
	{0x00b7, 0x00}, {0x00bb, 0x3c}, {0x00b2, 0x09}, {0x00ca, 0x09},
	{0x0198, 0x01}, {0x01b0, 0x17}, {0x01ad, 0x00}, {0x00ff, 0x05},
	{0x0100, 0x05}, {0x0199, 0x05}, {0x01a6, 0x1b}, {0x01ac, 0x3e},
	{0x01a7, 0x1f}, {0x0030, 0x00},
	// public defaults
	{0x0011, 0x10}, {0x010a, 0x30}, {0x003f, 0x46}, {0x0031, 0xFF},
	{0x0041, 0x63}, {0x002e, 0x01}, {0x001b, 0x09}, {0x003e, 0x31},
	{0x0014, 0x24},
}

// ErrNotReady is returned when the sensor never reports a finished measurement.
var ErrNotReady = errors.New("vl6180x: timed out waiting for measurement")

// VL6180X is a time-of-flight proximity sensor with a ~0-200 mm range.
type VL6180X struct {
	dev *i2c.Dev
}

// NewVL6180X probes the device at addr and loads the tuning table if it was just powered up.
func NewVL6180X(bus i2c.Bus, addr uint16) (*VL6180X, error) {
	d := &VL6180X{dev: &i2c.Dev{Bus: bus, Addr: addr}}
	id, err := d.read8(regModelID)
	if err != nil {
		return nil, fmt.Errorf("vl6180x@%#x: read model id: %w", addr, err)
	}
	if id != vl6180xModelID {
		return nil, fmt.Errorf("vl6180x@%#x: unexpected model id %#x", addr, id)
	}
	fresh, err := d.read8(regFreshOutOfReset)
	if err != nil {
		return nil, fmt.Errorf("vl6180x@%#x: %w", addr, err)
	}
	if fresh&0x01 == 1 {
		for _, kv := range vl6180xTuning {
			if err := d.write8(kv[0], byte(kv[1])); err != nil {
				return nil, fmt.Errorf("vl6180x@%#x: tuning %#04x: %w", addr, kv[0], err)
			}
		}
		if err := d.write8(regFreshOutOfReset, 0x00); err != nil {
			return nil, fmt.Errorf("vl6180x@%#x: %w", addr, err)
		}
	}
	return d, nil
}

// SetAddress moves the device to a new 7-bit address. The change is lost on
// power-down; with two sensors on one bus the second is moved while the
// first is held in reset.
func (d *VL6180X) SetAddress(addr uint16) error {
	if addr == 0 || addr > 0x7F {
		return fmt.Errorf("%s: invalid address %#x", d, addr)
	}
	if err := d.write8(regSlaveDeviceAddress, byte(addr)); err != nil {
		return fmt.Errorf("%s: set address: %w", d, err)
	}
	d.dev.Addr = addr
	return nil
}

func (d *VL6180X) String() string {
	return fmt.Sprintf("vl6180x@%#x", d.dev.Addr)
}

// Range runs one single-shot measurement and returns millimeters.
//
// Overflow and convergence statuses still return the raw value (255 means
// nothing in view); only system faults are errors.
func (d *VL6180X) Range() (int, error) {
	if err := d.waitFor(regResultRangeStatus, 0x01, 0x01); err != nil {
		return 0, err
	}
	if err := d.write8(regSysRangeStart, 0x01); err != nil {
		return 0, err
	}
	if err := d.waitFor(regResultInterruptStatus, 0x07, 0x04); err != nil {
		return 0, err
	}
	mm, err := d.read8(regResultRangeVal)
	if err != nil {
		return 0, err
	}
	st, err := d.read8(regResultRangeStatus)
	if err != nil {
		return 0, err
	}
	if err := d.write8(regSysInterruptClear, 0x07); err != nil {
		return 0, err
	}
	if code := st >> 4; code >= 1 && code <= 5 {
		return 0, fmt.Errorf("%s: range error status %d", d, code)
	}
	return int(mm), nil
}

func (d *VL6180X) waitFor(reg uint16, mask, want byte) error {
	for i := 0; i < maxStatusPolls; i++ {
		v, err := d.read8(reg)
		if err != nil {
			return err
		}
		if v&mask == want {
			return nil
		}
	}
	return ErrNotReady
}

func (d *VL6180X) read8(reg uint16) (byte, error) {
	r := make([]byte, 1)
	if err := d.dev.Tx([]byte{byte(reg >> 8), byte(reg & 0xFF)}, r); err != nil {
		return 0, err
	}
	return r[0], nil
}

func (d *VL6180X) write8(reg uint16, v byte) error {
	return d.dev.Tx([]byte{byte(reg >> 8), byte(reg & 0xFF), v}, nil)
}

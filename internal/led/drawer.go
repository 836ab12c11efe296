package led

import (
	"fmt"
	"image"
	"io"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
)

// DefaultSPIFreq drives WS2812 pixels through nrzled's 3 bit NRZ encoding.
const DefaultSPIFreq = 2500 * physic.KiloHertz

// DrawerDriver renders frames as an N x 1 image onto a display.Drawer.
type DrawerDriver struct {
	d      display.Drawer
	img    *image.NRGBA
	n      int
	closer io.Closer
}

func NewDrawerDriver(d display.Drawer, n int) *DrawerDriver {
	return &DrawerDriver{d: d, img: image.NewNRGBA(image.Rect(0, 0, n, 1)), n: n}
}

func (dd *DrawerDriver) String() string { return dd.d.String() }

func (dd *DrawerDriver) Write(rgb []byte) error {
	if len(rgb) != dd.n*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), dd.n)
	}
	for i := 0; i < dd.n; i++ {
		p := dd.img.Pix[4*i : 4*i+4]
		p[0], p[1], p[2], p[3] = rgb[3*i], rgb[3*i+1], rgb[3*i+2], 0xFF
	}
	if err := dd.d.Draw(dd.d.Bounds(), dd.img, image.Point{}); err != nil {
		return fmt.Errorf("draw %s: %w", dd.d, err)
	}
	return nil
}

func (dd *DrawerDriver) Close() error {
	err := dd.d.Halt()
	if dd.closer != nil {
		if cerr := dd.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// OpenSPI opens a WS2812 strip on the named SPI port ("" picks the first one).
// host.Init must have been called.
func OpenSPI(port string, n int, freq physic.Frequency) (*DrawerDriver, error) {
	p, err := spireg.Open(port)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", port, err)
	}
	if freq == 0 {
		freq = DefaultSPIFreq
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: n, Channels: 3, Freq: freq})
	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	if err := d.Halt(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("nrzled halt: %w", err)
	}
	dd := NewDrawerDriver(d, n)
	dd.closer = p
	return dd, nil
}

// NewConsole prints the strip as colored blocks on the terminal.
func NewConsole(n int) *DrawerDriver {
	return NewDrawerDriver(screen.New(n), n)
}

// Open builds the driver named by kind ("spi", "console" or "sim"). A missing
// SPI port falls back to the console, as on a development machine.
func Open(kind, port string, n int, freq physic.Frequency, log zerolog.Logger) (Driver, error) {
	switch kind {
	case "spi":
		d, err := OpenSPI(port, n, freq)
		if err != nil {
			log.Warn().Err(err).Msg("no SPI port, printing at the console")
			return NewConsole(n), nil
		}
		log.Info().Str("driver", d.String()).Int("pixels", n).Msg("strip ready")
		return d, nil
	case "console":
		return NewConsole(n), nil
	case "sim":
		return NewSim(log, 0), nil
	default:
		return nil, fmt.Errorf("led: unknown driver %q", kind)
	}
}

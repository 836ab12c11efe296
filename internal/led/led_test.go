package led

import (
	"bytes"
	"errors"
	"image"
	imgcolor "image/color"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/devices/v3/nrzled"

	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/frame"
)

func TestStripShow(t *testing.T) {
	sim := NewSim(zerolog.Nop(), 4)
	s, err := NewStrip(3, sim, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	s.Fill(color.MaxBlue)
	s.SetPixel(1, color.RGB{R: 10, G: 20, B: 30})
	require.NoError(t, s.Show())
	assert.Equal(t, []byte{0, 0, 255, 10, 20, 30, 0, 0, 255}, sim.Last)
	assert.Equal(t, uint64(1), s.Shown())

	s.Draw(frame.Frame{color.White})
	require.NoError(t, s.Show())
	assert.Equal(t, []byte{255, 255, 255, 10, 20, 30, 0, 0, 255}, sim.Last)
	assert.Len(t, sim.History, 2)
}

func TestStripBrightness(t *testing.T) {
	sim := NewSim(zerolog.Nop(), 0)
	s, err := NewStrip(2, sim, 0.5)
	require.NoError(t, err)
	s.Fill(color.RGB{R: 200, G: 101, B: 1})
	require.NoError(t, s.Show())
	assert.Equal(t, []byte{100, 50, 0, 100, 50, 0}, sim.Last)
	assert.Equal(t, color.RGB{R: 200, G: 101, B: 1}, s.Pixels()[0], "buffer keeps full values")
	assert.Empty(t, sim.History)
}

func TestStripSetPixelOutOfRangePanics(t *testing.T) {
	s, err := NewStrip(2, NewSim(zerolog.Nop(), 0), 1)
	require.NoError(t, err)
	assert.Panics(t, func() { s.SetPixel(2, color.White) })
	assert.Panics(t, func() { s.SetPixel(-1, color.White) })
}

func TestNewStripValidation(t *testing.T) {
	sim := NewSim(zerolog.Nop(), 0)
	_, err := NewStrip(0, sim, 1)
	assert.Error(t, err)
	_, err = NewStrip(2, nil, 1)
	assert.Error(t, err)
	_, err = NewStrip(2, sim, 1.5)
	assert.Error(t, err)
}

type failingDriver struct{ closed bool }

func (f *failingDriver) Write([]byte) error { return errors.New("bus gone") }
func (f *failingDriver) Close() error       { f.closed = true; return nil }

func TestStripShowWrapsDriverError(t *testing.T) {
	drv := &failingDriver{}
	s, err := NewStrip(1, drv, 1)
	require.NoError(t, err)
	err = s.Show()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bus gone")

	assert.Error(t, s.Close())
	assert.True(t, drv.closed)
}

func TestStripCloseBlanks(t *testing.T) {
	sim := NewSim(zerolog.Nop(), 0)
	s, err := NewStrip(2, sim, 1)
	require.NoError(t, err)
	s.Fill(color.White)
	require.NoError(t, s.Close())
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0}, sim.Last)
	assert.True(t, sim.Closed)
}

func TestSimHistoryIsBounded(t *testing.T) {
	sim := NewSim(zerolog.Nop(), 2)
	for i := byte(0); i < 5; i++ {
		require.NoError(t, sim.Write([]byte{i, i, i}))
	}
	assert.Equal(t, 5, sim.Count)
	assert.Equal(t, [][]byte{{3, 3, 3}, {4, 4, 4}}, sim.History)
}

type recordingDrawer struct {
	bounds image.Rectangle
	last   []imgcolor.NRGBA
	halted bool
}

func (r *recordingDrawer) String() string             { return "recording" }
func (r *recordingDrawer) Halt() error                { r.halted = true; return nil }
func (r *recordingDrawer) ColorModel() imgcolor.Model { return imgcolor.NRGBAModel }
func (r *recordingDrawer) Bounds() image.Rectangle    { return r.bounds }
func (r *recordingDrawer) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	r.last = r.last[:0]
	for x := dst.Min.X; x < dst.Max.X; x++ {
		r.last = append(r.last, imgcolor.NRGBAModel.Convert(src.At(sp.X+x, sp.Y)).(imgcolor.NRGBA))
	}
	return nil
}

func TestDrawerDriverRendersRow(t *testing.T) {
	rd := &recordingDrawer{bounds: image.Rect(0, 0, 2, 1)}
	dd := NewDrawerDriver(rd, 2)
	require.NoError(t, dd.Write([]byte{1, 2, 3, 4, 5, 6}))
	assert.Equal(t, []imgcolor.NRGBA{{1, 2, 3, 255}, {4, 5, 6, 255}}, rd.last)

	assert.Error(t, dd.Write([]byte{1, 2, 3}))
	require.NoError(t, dd.Close())
	assert.True(t, rd.halted)
}

func TestDrawerDriverOverNrzled(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := nrzled.NewSPI(spitest.NewRecordRaw(&buf), &nrzled.Opts{NumPixels: 4, Channels: 3, Freq: DefaultSPIFreq})
	require.NoError(t, err)
	dd := NewDrawerDriver(d, 4)
	assert.Equal(t, "nrzled{recordraw}", dd.String())

	s, err := NewStrip(4, dd, 1)
	require.NoError(t, err)
	require.NoError(t, s.Show())
	black := append([]byte(nil), buf.Bytes()...)
	require.NotEmpty(t, black)

	buf.Reset()
	s.Fill(color.MaxRed)
	require.NoError(t, s.Show())
	assert.Len(t, buf.Bytes(), len(black))
	assert.NotEqual(t, black, buf.Bytes())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("dmx", "", 4, 0, zerolog.Nop())
	assert.Error(t, err)

	d, err := Open("sim", "", 4, 0, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &Sim{}, d)
}

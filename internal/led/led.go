// Package led holds the pixel sinks the controller draws into. A Strip
// buffers one frame and pushes it to a Driver on Show.
package led

import (
	"errors"
	"fmt"

	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/frame"
)

// Driver abstracts an LED output transport.
type Driver interface {
	// Write pushes an RGB frame to hardware. len(rgb) must be 3*N.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}

// PixelSink is what the controller, the self test and the fault handler
// draw into. Pixels are buffered until Show.
type PixelSink interface {
	Len() int
	SetPixel(i int, c color.RGB)
	Fill(c color.RGB)
	Show() error
}

// Strip is a buffered PixelSink over a Driver with a global brightness.
type Strip struct {
	drv        Driver
	px         frame.Frame
	lit        frame.Frame
	out        []byte
	brightness float64
	shown      uint64
}

var _ PixelSink = (*Strip)(nil)

func NewStrip(n int, drv Driver, brightness float64) (*Strip, error) {
	if n <= 0 {
		return nil, fmt.Errorf("led: invalid pixel count %d", n)
	}
	if drv == nil {
		return nil, errors.New("led: nil driver")
	}
	if brightness < 0 || brightness > 1 {
		return nil, fmt.Errorf("led: brightness %.2f outside [0,1]", brightness)
	}
	return &Strip{
		drv:        drv,
		px:         frame.New(n),
		lit:        frame.New(n),
		out:        make([]byte, 3*n),
		brightness: brightness,
	}, nil
}

func (s *Strip) Len() int { return len(s.px) }

// SetPixel panics when i is out of range.
func (s *Strip) SetPixel(i int, c color.RGB) { s.px.Set(i, c) }

func (s *Strip) Fill(c color.RGB) { s.px.Fill(c) }

// Draw copies f into the buffer. Extra pixels on either side are ignored.
func (s *Strip) Draw(f frame.Frame) { copy(s.px, f) }

// Pixels is the buffered frame, before brightness.
func (s *Strip) Pixels() frame.Frame { return s.px }

// Shown counts successful pushes to the driver.
func (s *Strip) Shown() uint64 { return s.shown }

func (s *Strip) Show() error {
	src := s.px
	if s.brightness < 1 {
		for i, c := range s.px {
			s.lit[i] = c.Scale(s.brightness)
		}
		src = s.lit
	}
	s.out = src.Bytes(s.out)
	if err := s.drv.Write(s.out); err != nil {
		return fmt.Errorf("led: show: %w", err)
	}
	s.shown++
	return nil
}

// Close blanks the strip and releases the driver.
func (s *Strip) Close() error {
	s.px.Clear()
	showErr := s.Show()
	if err := s.drv.Close(); err != nil {
		return err
	}
	return showErr
}
